package host

import "errors"

var (
	// ErrUnsupported marks a capability the current platform or architecture
	// does not provide. Checks translate it into a SKIPPED outcome, never a
	// pass or fail.
	ErrUnsupported = errors.New("capability not supported on this target")

	// ErrInconclusive marks a probe that could not gather evidence either
	// way (for example, permission denied while reading process metadata).
	// Absence of evidence is not evidence of compromise, so callers treat it
	// as a pass for the affected scope.
	ErrInconclusive = errors.New("probe inconclusive")
)
