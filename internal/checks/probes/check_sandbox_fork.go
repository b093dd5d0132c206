package probes

import (
	"context"
	"fmt"
	"sync"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

// Process duplication is a process-wide operation: concurrent detection runs
// must not each spawn a child at the same time.
var forkMu sync.Mutex

type sandboxForkCheck struct{}

func (sandboxForkCheck) ID() checks.CheckID { return checks.CheckSandboxFork }

func (sandboxForkCheck) Title() string { return "Sandbox Fork Enforcement" }

func (sandboxForkCheck) Description() string {
	return "Attempts to duplicate the process through the raw kernel entry point, bypassing userland sandbox hooks. The sandbox of an uncompromised host forbids this; a successful duplication fails the check and the child is terminated immediately. Suppressed on virtualized hosts, which legitimately permit it."
}

func (sandboxForkCheck) Category() checks.Category { return checks.CategoryProcess }

type forkResult struct {
	pid int
	err error
}

func (sandboxForkCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	if !env.Control.Supported() {
		return checks.Skip(checks.CheckSandboxFork,
			"process duplication probe not supported on this target"), nil
	}

	// The fork and the mandatory child kill run together off the calling
	// goroutine: if the caller's deadline fires, the probe is abandoned as
	// inconclusive but the child-killing still runs to completion.
	done := make(chan forkResult, 1)
	go func() {
		forkMu.Lock()
		defer forkMu.Unlock()
		pid, err := env.Control.Fork()
		if pid > 0 {
			_ = env.Control.Kill(pid)
		}
		done <- forkResult{pid: pid, err: err}
	}()

	select {
	case <-ctx.Done():
		return checks.Pass(checks.CheckSandboxFork),
			fmt.Errorf("sandbox-fork probe timed out: %w", host.ErrInconclusive)
	case r := <-done:
		if r.err != nil {
			// Duplication refused: the sandbox holds.
			return checks.Pass(checks.CheckSandboxFork), nil
		}
		if r.pid >= 0 {
			return checks.Fail(checks.CheckSandboxFork,
				fmt.Sprintf("sandbox permitted raw process duplication (child pid %d)", r.pid)), nil
		}
		return checks.Pass(checks.CheckSandboxFork), nil
	}
}

func init() {
	checks.Register(sandboxForkCheck{})
}
