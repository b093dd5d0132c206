//go:build linux

package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unsafe"
)

type procMapsMemory struct{}

func newMemoryInspector() MemoryInspector { return procMapsMemory{} }

func (procMapsMemory) Region(addr uintptr) (Region, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return Region{}, fmt.Errorf("open /proc/self/maps: %w", ErrInconclusive)
	}
	defer f.Close()
	return findRegion(f, addr)
}

func (procMapsMemory) Read(addr uintptr, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("read length must be positive, got %d", n)
	}
	// The caller is responsible for confirming the range lies inside a
	// readable mapping (via Region) before calling Read.
	src := unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
	out := make([]byte, n)
	copy(out, src)
	return out, nil
}

// findRegion scans /proc/<pid>/maps content for the mapping containing addr.
func findRegion(r io.Reader, addr uintptr) (Region, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		lo, hi, ok := parseAddrRange(fields[0])
		if !ok {
			continue
		}
		reg := Region{
			Start:      lo,
			End:        hi,
			Readable:   strings.Contains(fields[1][:1], "r"),
			Writable:   len(fields[1]) > 1 && fields[1][1] == 'w',
			Executable: len(fields[1]) > 2 && fields[1][2] == 'x',
		}
		if reg.Contains(addr) {
			return reg, nil
		}
	}
	return Region{}, fmt.Errorf("no mapping contains %#x: %w", addr, ErrInconclusive)
}

func parseAddrRange(s string) (uintptr, uintptr, bool) {
	loStr, hiStr, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, false
	}
	lo, err := strconv.ParseUint(loStr, 16, 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.ParseUint(hiStr, 16, 64)
	if err != nil {
		return 0, 0, false
	}
	return uintptr(lo), uintptr(hi), true
}
