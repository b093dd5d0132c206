package probes

import (
	"context"
	"fmt"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type watchpointCheck struct{}

func (watchpointCheck) ID() checks.CheckID { return checks.CheckWatchpointScan }

func (watchpointCheck) Title() string { return "Hardware Watchpoint Scan" }

func (watchpointCheck) Description() string {
	return "Enumerates a snapshot of the process's threads and reads each thread's hardware debug-register state. Any non-zero watch-register slot on any thread fails the check. Targets that cannot read register state record a skipped outcome."
}

func (watchpointCheck) Category() checks.Category { return checks.CategoryMemory }

func (watchpointCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	if !env.Threads.Supported() {
		return checks.Skip(checks.CheckWatchpointScan,
			"thread debug registers unreadable on this target"), nil
	}

	threads, err := env.Threads.Threads()
	if err != nil {
		return checks.Pass(checks.CheckWatchpointScan),
			fmt.Errorf("thread enumeration failed: %w", err)
	}

	// The enumeration is a snapshot: threads may exit mid-scan, so a
	// per-thread read failure only makes that thread's scope inconclusive
	// and the scan continues. The first such error is surfaced for logging.
	var degraded error
	for _, th := range threads {
		st, err := env.Threads.DebugState(th)
		if err != nil {
			if degraded == nil {
				degraded = fmt.Errorf("debug state of thread %d unreadable: %w", th.TID, err)
			}
			continue
		}
		if st.Armed() {
			return checks.Fail(checks.CheckWatchpointScan,
				fmt.Sprintf("hardware watchpoint armed on thread %d", th.TID)), nil
		}
	}
	return checks.Pass(checks.CheckWatchpointScan), degraded
}

func init() {
	checks.Register(watchpointCheck{})
}
