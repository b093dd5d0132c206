//go:build !linux

package host

import "os"

type stubProcessInfo struct{}

func newProcessInfo() ProcessInfo { return stubProcessInfo{} }

func (stubProcessInfo) TracerPID() (int, error) { return 0, ErrUnsupported }

func (stubProcessInfo) ParentPID() int { return os.Getppid() }

func (stubProcessInfo) InitPID() int { return 1 }
