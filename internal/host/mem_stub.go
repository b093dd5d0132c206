//go:build !linux

package host

type stubMemory struct{}

func newMemoryInspector() MemoryInspector { return stubMemory{} }

func (stubMemory) Region(addr uintptr) (Region, error) { return Region{}, ErrUnsupported }

func (stubMemory) Read(addr uintptr, n int) ([]byte, error) { return nil, ErrUnsupported }
