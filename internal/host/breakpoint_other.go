//go:build !arm64

package host

// On variable-length instruction sets a raw byte scan cannot distinguish a
// planted trap (INT3 on x86 is a single 0xCC byte) from compiler padding or
// immediate operands, so no patterns are offered and the scan reports
// unsupported rather than guessing.
var archBreakpointPatterns []BreakpointPattern
