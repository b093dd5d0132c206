//go:build !linux

package host

type stubImageTable struct{}

func newImageTable() ImageTable { return stubImageTable{} }

func (stubImageTable) Snapshot() ([]string, error) { return nil, ErrUnsupported }
