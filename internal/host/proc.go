package host

// ProcessInfo exposes process metadata used by the trace-flag and
// parent-process checks.
type ProcessInfo interface {
	// TracerPID returns the pid of an attached tracer, or 0 when the process
	// is not being traced. ErrUnsupported when the platform does not expose
	// the flag.
	TracerPID() (int, error)

	// ParentPID returns the pid of the parent process.
	ParentPID() int

	// InitPID returns the platform's canonical first-process pid (the
	// process supervisor expected to be the parent of a normally launched
	// process).
	InitPID() int
}
