package probes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type loaderImageCheck struct{}

func (loaderImageCheck) ID() checks.CheckID { return checks.CheckLoaderImage }

func (loaderImageCheck) Title() string { return "Loaded Image Deny List" }

func (loaderImageCheck) Description() string {
	return "Takes a snapshot of the dynamic modules mapped into the process and matches each path case-insensitively against a versioned deny list of injection, hooking, and tracing frameworks. The first match fails the check."
}

func (loaderImageCheck) Category() checks.Category { return checks.CategoryLoader }

func (loaderImageCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	images, err := env.Images.Snapshot()
	if err != nil {
		if errors.Is(err, host.ErrUnsupported) {
			return checks.Skip(checks.CheckLoaderImage,
				"loaded-module table not enumerable on this target"), nil
		}
		return checks.Pass(checks.CheckLoaderImage),
			fmt.Errorf("loaded-module snapshot failed: %w", err)
	}

	deny := imageDenyList
	if cfg != nil && len(cfg.ExtraImages) > 0 {
		deny = append(append([]string(nil), imageDenyList...), cfg.ExtraImages...)
	}

	if image, pattern, ok := MatchImage(images, deny); ok {
		return checks.Fail(checks.CheckLoaderImage,
			fmt.Sprintf("loaded image matches deny list: %s (pattern %q)", image, pattern)), nil
	}
	return checks.Pass(checks.CheckLoaderImage), nil
}

// MatchImage returns the first loaded image whose path contains any deny
// pattern, case-insensitively, together with the pattern that matched.
func MatchImage(images, deny []string) (image, pattern string, ok bool) {
	lowered := make([]string, len(deny))
	for i, d := range deny {
		lowered[i] = strings.ToLower(d)
	}
	for _, img := range images {
		li := strings.ToLower(img)
		for i, d := range lowered {
			if d == "" {
				continue
			}
			if strings.Contains(li, d) {
				return img, deny[i], true
			}
		}
	}
	return "", "", false
}

func init() {
	checks.Register(loaderImageCheck{})
}
