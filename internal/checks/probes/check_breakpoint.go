package probes

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

// defaultScanBytes bounds how much code is scanned past the target address
// when the caller gives no explicit length.
const defaultScanBytes = 4096

type breakpointCheck struct{}

func (breakpointCheck) ID() checks.CheckID { return checks.CheckBreakpointScan }

func (breakpointCheck) Title() string { return "Breakpoint Instruction Scan" }

func (breakpointCheck) Description() string {
	return "Resolves the memory region containing a code address, requires read+execute protection, and scans instruction-aligned words for known breakpoint opcode patterns. Architectures without an unambiguous trap encoding record a skipped outcome."
}

func (breakpointCheck) Category() checks.Category { return checks.CategoryMemory }

// scanAnchor is the code address scanned during a full detection run: a
// debugger targeting the detection engine plants its trap on or near the
// engine's own entry points.
//
//go:noinline
func scanAnchor() {}

func (breakpointCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	if len(host.BreakpointPatterns()) == 0 {
		return checks.Skip(checks.CheckBreakpointScan,
			"no unambiguous trap encoding on this architecture"), nil
	}

	addr := reflect.ValueOf(scanAnchor).Pointer()
	found, off, err := ScanForBreakpoint(env, addr, defaultScanBytes)
	if err != nil {
		if errors.Is(err, host.ErrUnsupported) {
			return checks.Skip(checks.CheckBreakpointScan,
				"process memory not inspectable on this target"), nil
		}
		return checks.Pass(checks.CheckBreakpointScan),
			fmt.Errorf("breakpoint scan degraded: %w", err)
	}
	if found {
		return checks.Fail(checks.CheckBreakpointScan,
			fmt.Sprintf("breakpoint instruction at %#x (offset %#x into scanned code)", addr+uintptr(off), off)), nil
	}
	return checks.Pass(checks.CheckBreakpointScan), nil
}

// ScanForBreakpoint inspects the region containing addr and scans up to
// sizeBound bytes for a trap instruction. The region must be mapped
// read+execute; anything else is inconclusive (a debugger cannot plant a
// trap in code the process cannot even run).
func ScanForBreakpoint(env *host.Host, addr uintptr, sizeBound int) (bool, int, error) {
	reg, err := env.Memory.Region(addr)
	if err != nil {
		return false, 0, err
	}
	if !reg.Readable || !reg.Executable {
		return false, 0, fmt.Errorf("region at %#x is not read+execute: %w", addr, host.ErrInconclusive)
	}

	n := sizeBound
	if n <= 0 {
		n = defaultScanBytes
	}
	if max := int(reg.End - addr); n > max {
		n = max
	}
	if n <= 0 {
		return false, 0, fmt.Errorf("empty scan window at %#x: %w", addr, host.ErrInconclusive)
	}

	buf, err := env.Memory.Read(addr, n)
	if err != nil {
		return false, 0, err
	}
	off, found := host.ScanBreakpoints(buf, host.BreakpointPatterns())
	return found, off, nil
}

func init() {
	checks.Register(breakpointCheck{})
}
