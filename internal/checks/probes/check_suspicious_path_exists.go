// Package probes holds one file per check: the OS-specific mechanics for one
// class of evidence, registered into the checks registry at init time.
package probes

import (
	"context"
	"fmt"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type suspiciousPathExistsCheck struct{}

func (suspiciousPathExistsCheck) ID() checks.CheckID { return checks.CheckSuspiciousPathExists }

func (suspiciousPathExistsCheck) Title() string { return "Suspicious Path Exists" }

func (suspiciousPathExistsCheck) Description() string {
	return "Tests a versioned list of paths associated with privilege-escalation tooling, plus caller-supplied extras, for presence on disk. The first existing path fails the check."
}

func (suspiciousPathExistsCheck) Category() checks.Category { return checks.CategoryFilesystem }

func (suspiciousPathExistsCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	for _, path := range candidatePaths(cls, cfg) {
		if _, err := env.FS.Stat(path); err != nil {
			// Unreadable or absent: no evidence from this path.
			continue
		}
		return checks.Fail(checks.CheckSuspiciousPathExists,
			fmt.Sprintf("suspicious path exists: %s", path)), nil
	}
	return checks.Pass(checks.CheckSuspiciousPathExists), nil
}

// candidatePaths merges the built-in list with caller extras and, on an
// emulated host, drops the paths that appear there without security meaning.
func candidatePaths(cls envclass.Classification, cfg *config.Checks) []string {
	all := suspiciousPaths
	if cfg != nil && len(cfg.ExtraPaths) > 0 {
		all = append(append([]string(nil), suspiciousPaths...), cfg.ExtraPaths...)
	}
	if !cls.Emulated {
		return all
	}
	kept := make([]string, 0, len(all))
	for _, p := range all {
		if _, benign := emulatorBenignPaths[p]; benign {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func init() {
	checks.Register(suspiciousPathExistsCheck{})
}
