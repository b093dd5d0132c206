//go:build arm64

package probes

import (
	"encoding/binary"
	"testing"

	"tamperscan/internal/host"
)

func TestScanForBreakpointFindsPlantedTrap(t *testing.T) {
	const addr = uintptr(0x1000)

	code := make([]byte, 64)
	binary.LittleEndian.PutUint32(code[24:], 0xd4200000) // BRK #0

	env := newTestHost()
	env.Memory = fakeMemory{
		region: host.Region{Start: 0x1000, End: 0x2000, Readable: true, Executable: true},
		data:   code,
	}

	found, off, err := ScanForBreakpoint(env, addr, len(code))
	if err != nil {
		t.Fatalf("ScanForBreakpoint() error = %v", err)
	}
	if !found || off != 24 {
		t.Fatalf("ScanForBreakpoint() = (%v, %d), want trap at offset 24", found, off)
	}
}
