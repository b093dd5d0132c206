package host

import "encoding/binary"

// BreakpointPattern describes one architecture's trap instruction encoding.
// Width is the instruction alignment in bytes: 4-byte patterns are matched
// as masked little-endian words at 4-byte offsets, 1-byte patterns per byte.
type BreakpointPattern struct {
	Mask  uint32
	Value uint32
	Width int
}

// BreakpointPatterns reports the trap encodings scanned on this target.
// Empty on architectures where a byte scan cannot distinguish a planted
// trap from ordinary code (see breakpoint_*.go).
func BreakpointPatterns() []BreakpointPattern {
	return archBreakpointPatterns
}

// ScanBreakpoints scans buf for any of the given trap patterns and returns
// the byte offset of the first match.
func ScanBreakpoints(buf []byte, patterns []BreakpointPattern) (int, bool) {
	for _, p := range patterns {
		switch p.Width {
		case 4:
			for off := 0; off+4 <= len(buf); off += 4 {
				word := binary.LittleEndian.Uint32(buf[off:])
				if word&p.Mask == p.Value {
					return off, true
				}
			}
		case 1:
			for off := 0; off < len(buf); off++ {
				if uint32(buf[off])&p.Mask == p.Value {
					return off, true
				}
			}
		}
	}
	return 0, false
}
