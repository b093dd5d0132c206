package probes

import (
	"context"
	"errors"
	"fmt"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type traceFlagCheck struct{}

func (traceFlagCheck) ID() checks.CheckID { return checks.CheckTraceFlag }

func (traceFlagCheck) Title() string { return "Process Trace Flag" }

func (traceFlagCheck) Description() string {
	return "Queries the OS-maintained trace flag of the current process. A set flag means a debugger or tracer is attached; the same primitive backs both the jailbreak and the debugger categories because an attached tracer manifests identically at this level."
}

func (traceFlagCheck) Category() checks.Category { return checks.CategoryProcess }

func (traceFlagCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	pid, err := env.Process.TracerPID()
	if err != nil {
		if errors.Is(err, host.ErrUnsupported) {
			return checks.Skip(checks.CheckTraceFlag,
				"trace flag not exposed on this target"), nil
		}
		return checks.Pass(checks.CheckTraceFlag),
			fmt.Errorf("trace flag unreadable: %w", err)
	}
	if pid != 0 {
		return checks.Fail(checks.CheckTraceFlag,
			fmt.Sprintf("process is being traced (tracer pid %d)", pid)), nil
	}
	return checks.Pass(checks.CheckTraceFlag), nil
}

func init() {
	checks.Register(traceFlagCheck{})
}
