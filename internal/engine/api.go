package engine

import (
	"fmt"

	"tamperscan/internal/checks/probes"
	"tamperscan/internal/host"
)

// Focused single-signal entry points for embedders that want one answer
// without a full detection run. Each mirrors the corresponding check's
// mechanics but returns the raw signal instead of an outcome.

// TraceFlagSet reports whether the OS trace flag of the current process is
// set, meaning a debugger or tracer is attached.
func (e *Engine) TraceFlagSet() (bool, error) {
	pid, err := e.host.Process.TracerPID()
	if err != nil {
		return false, err
	}
	return pid != 0, nil
}

// ScanLoadedImages matches the process's loaded module paths against the
// given deny patterns (case-insensitive substrings). An empty pattern list
// never matches.
func (e *Engine) ScanLoadedImages(deny []string) (image, pattern string, found bool, err error) {
	images, err := e.host.Images.Snapshot()
	if err != nil {
		return "", "", false, fmt.Errorf("loaded-module snapshot failed: %w", err)
	}
	image, pattern, found = probes.MatchImage(images, deny)
	return image, pattern, found, nil
}

// HasBreakpoint scans up to sizeBound bytes of executable code at addr for a
// trap instruction. Architectures without an unambiguous trap encoding
// report host.ErrUnsupported.
func (e *Engine) HasBreakpoint(addr uintptr, sizeBound int) (bool, error) {
	if len(host.BreakpointPatterns()) == 0 {
		return false, fmt.Errorf("no unambiguous trap encoding on this architecture: %w", host.ErrUnsupported)
	}
	found, _, err := probes.ScanForBreakpoint(e.host, addr, sizeBound)
	if err != nil {
		return false, err
	}
	return found, nil
}

// HasActiveWatchpoint reports whether any thread of the process has a
// hardware watch register armed.
func (e *Engine) HasActiveWatchpoint() (bool, error) {
	if !e.host.Threads.Supported() {
		return false, host.ErrUnsupported
	}
	threads, err := e.host.Threads.Threads()
	if err != nil {
		return false, err
	}
	var firstErr error
	for _, th := range threads {
		st, err := e.host.Threads.DebugState(th)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if st.Armed() {
			return true, nil
		}
	}
	return false, firstErr
}
