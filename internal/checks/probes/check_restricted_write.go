package probes

import (
	"context"
	"fmt"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type restrictedWriteCheck struct{}

func (restrictedWriteCheck) ID() checks.CheckID { return checks.CheckRestrictedWrite }

func (restrictedWriteCheck) Title() string { return "Restricted Location Write" }

func (restrictedWriteCheck) Description() string {
	return "Attempts a write+delete cycle of a uniquely named temporary file under paths expected to be immutable. Any successful write fails the check; a write error means the expected immutability holds. The transient artifact is removed on every path, including failure."
}

func (restrictedWriteCheck) Category() checks.Category { return checks.CategoryFilesystem }

func (restrictedWriteCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	for _, dir := range restrictedWritePaths {
		// The write runs off the calling goroutine so the caller's deadline
		// bounds a stalled filesystem. On timeout the probe is inconclusive;
		// the in-flight write still cleans up after itself when it finishes.
		done := make(chan error, 1)
		go func(dir string) {
			done <- env.FS.ProbeWrite(dir)
		}(dir)

		select {
		case <-ctx.Done():
			return checks.Pass(checks.CheckRestrictedWrite),
				fmt.Errorf("restricted-write probe on %s timed out: %w", dir, host.ErrInconclusive)
		case err := <-done:
			if err == nil {
				return checks.Fail(checks.CheckRestrictedWrite,
					fmt.Sprintf("restricted path accepted a write: %s", dir)), nil
			}
			// Write refused: immutability holds for this path.
		}
	}
	return checks.Pass(checks.CheckRestrictedWrite), nil
}

func init() {
	checks.Register(restrictedWriteCheck{})
}
