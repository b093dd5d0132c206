package host

// ProcessControl is the injectable seam for the sandbox-fork probe. The real
// implementation duplicates the process through the raw kernel entry point so
// any userland sandbox hook on the ordinary API is bypassed; tests substitute
// a fake that returns canned results without spawning children.
type ProcessControl interface {
	Supported() bool

	// Fork duplicates the current process and returns the child pid in the
	// parent. Any spawned child must be handed to Kill immediately.
	Fork() (int, error)

	// Kill terminates and reaps a child created by Fork.
	Kill(pid int) error
}
