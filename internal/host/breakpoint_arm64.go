//go:build arm64

package host

// BRK #imm16: 1101 0100 001x xxxx xxxx xxxx xxx0 0000. Masking out the
// immediate matches every BRK variant a debugger can plant.
var archBreakpointPatterns = []BreakpointPattern{
	{Mask: 0xffe0001f, Value: 0xd4200000, Width: 4},
}
