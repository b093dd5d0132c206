//go:build !linux

package host

type stubThreads struct{}

func newThreadInspector() ThreadInspector { return stubThreads{} }

func (stubThreads) Supported() bool { return false }

func (stubThreads) Threads() ([]Thread, error) { return nil, ErrUnsupported }

func (stubThreads) DebugState(t Thread) (DebugState, error) { return DebugState{}, ErrUnsupported }
