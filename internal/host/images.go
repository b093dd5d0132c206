package host

// ImageTable enumerates the dynamic modules currently mapped into the
// process. Snapshot returns an owned, immutable copy taken at call time,
// never cached global state, so the loader checks stay pure and testable.
type ImageTable interface {
	Snapshot() ([]string, error)
}
