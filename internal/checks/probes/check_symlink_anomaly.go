package probes

import (
	"context"
	"fmt"
	"io/fs"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type symlinkAnomalyCheck struct{}

func (symlinkAnomalyCheck) ID() checks.CheckID { return checks.CheckSymlinkAnomaly }

func (symlinkAnomalyCheck) Title() string { return "Symbolic Link Anomaly" }

func (symlinkAnomalyCheck) Description() string {
	return "Resolves a fixed set of paths expected to be ordinary directories on a genuine device and flags any that resolve through a symbolic link, evidencing a repackaged filesystem layout."
}

func (symlinkAnomalyCheck) Category() checks.Category { return checks.CategoryFilesystem }

func (symlinkAnomalyCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	for _, path := range symlinkCheckedPaths {
		fi, err := env.FS.Lstat(path)
		if err != nil {
			// Absent on this platform: no evidence either way.
			continue
		}
		if fi.Mode()&fs.ModeSymlink == 0 {
			continue
		}
		target, err := env.FS.Readlink(path)
		if err != nil {
			target = "unresolvable target"
		}
		return checks.Fail(checks.CheckSymlinkAnomaly,
			fmt.Sprintf("path resolves through an unexpected symbolic link: %s -> %s", path, target)), nil
	}
	return checks.Pass(checks.CheckSymlinkAnomaly), nil
}

func init() {
	checks.Register(symlinkAnomalyCheck{})
}
