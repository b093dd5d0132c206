package host

// Region describes the memory mapping containing an address.
type Region struct {
	Start, End uintptr
	Readable   bool
	Writable   bool
	Executable bool
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uintptr) bool {
	return addr >= r.Start && addr < r.End
}

// MemoryInspector resolves the mapping that contains a code address and
// reads process memory for the breakpoint scan.
type MemoryInspector interface {
	Region(addr uintptr) (Region, error)
	Read(addr uintptr, n int) ([]byte, error)
}
