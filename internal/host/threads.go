package host

// Thread identifies one thread of the current process as seen in a
// point-in-time enumeration snapshot. Threads may exit between the snapshot
// and any later per-thread operation; callers must tolerate that.
type Thread struct {
	TID int
}

// DebugState is the hardware debug-register state of one thread. A non-zero
// watch-register slot means a debugger has armed a watchpoint.
type DebugState struct {
	WatchRegs []uint64
}

// Armed reports whether any watch-register slot is non-zero.
func (s DebugState) Armed() bool {
	for _, r := range s.WatchRegs {
		if r != 0 {
			return true
		}
	}
	return false
}

// ThreadInspector enumerates threads and reads their hardware debug
// registers. Supported reports whether DebugState can actually be read on
// this target; when false the watchpoint check records a skipped outcome so
// the runner's category list stays uniform across targets.
type ThreadInspector interface {
	Supported() bool
	Threads() ([]Thread, error)
	DebugState(t Thread) (DebugState, error)
}
