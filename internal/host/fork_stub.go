//go:build !linux

package host

type stubProcessControl struct{}

func newProcessControl() ProcessControl { return stubProcessControl{} }

func (stubProcessControl) Supported() bool { return false }

func (stubProcessControl) Fork() (int, error) { return -1, ErrUnsupported }

func (stubProcessControl) Kill(pid int) error { return nil }
