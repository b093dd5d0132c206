package probes

import (
	"context"
	"fmt"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type suspiciousPathOpenableCheck struct{}

func (suspiciousPathOpenableCheck) ID() checks.CheckID { return checks.CheckSuspiciousPathOpenable }

func (suspiciousPathOpenableCheck) Title() string { return "Suspicious Path Openable" }

func (suspiciousPathOpenableCheck) Description() string {
	return "Attempts to open the suspicious path list for reading. Sandbox rules hide these paths on an uncompromised host, so a successful open fails the check even when a bare existence test was inconclusive."
}

func (suspiciousPathOpenableCheck) Category() checks.Category { return checks.CategoryFilesystem }

func (suspiciousPathOpenableCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	for _, path := range candidatePaths(cls, cfg) {
		if err := env.FS.OpenReadable(path); err != nil {
			continue
		}
		return checks.Fail(checks.CheckSuspiciousPathOpenable,
			fmt.Sprintf("suspicious path is openable: %s", path)), nil
	}
	return checks.Pass(checks.CheckSuspiciousPathOpenable), nil
}

func init() {
	checks.Register(suspiciousPathOpenableCheck{})
}
