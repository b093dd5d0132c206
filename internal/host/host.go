package host

import "os"

// Host bundles the introspection primitives the checks consume. Every field
// is an interface (or injectable function) so tests can substitute fakes
// without touching the OS, and so unsupported capabilities degrade to an
// explicit "not supported" answer instead of a false pass or fail.
type Host struct {
	FS       Filesystem
	Process  ProcessInfo
	Images   ImageTable
	Memory   MemoryInspector
	Threads  ThreadInspector
	Control  ProcessControl
	Registry TypeRegistry

	// LookupEnv resolves runtime environment variables (emulator signals).
	LookupEnv func(key string) (string, bool)
}

// New wires the real platform implementations for the current target.
func New() *Host {
	return &Host{
		FS:        osFilesystem{},
		Process:   newProcessInfo(),
		Images:    newImageTable(),
		Memory:    newMemoryInspector(),
		Threads:   newThreadInspector(),
		Control:   newProcessControl(),
		Registry:  absentTypeRegistry{},
		LookupEnv: os.LookupEnv,
	}
}
