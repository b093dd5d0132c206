//go:build linux

package host

import (
	"fmt"
	"os"
	"strconv"
)

type procTaskThreads struct{}

func newThreadInspector() ThreadInspector { return procTaskThreads{} }

// Supported is false on Linux: a process cannot ptrace its own threads, so
// their debug registers are unreadable from inside. Enumeration still works
// and the seam stays in place for targets (or injected inspectors) that can
// read register state.
func (procTaskThreads) Supported() bool { return false }

func (procTaskThreads) Threads() ([]Thread, error) {
	dir, err := os.Open("/proc/self/task")
	if err != nil {
		return nil, fmt.Errorf("open /proc/self/task: %w", ErrInconclusive)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("enumerate threads: %w", ErrInconclusive)
	}

	threads := make([]Thread, 0, len(names))
	for _, name := range names {
		tid, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		threads = append(threads, Thread{TID: tid})
	}
	return threads, nil
}

func (procTaskThreads) DebugState(t Thread) (DebugState, error) {
	return DebugState{}, ErrUnsupported
}
