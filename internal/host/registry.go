package host

// TypeRegistry is the capability seam for platforms that expose a dynamic
// object/class registry (Objective-C style runtimes). Go has no such
// registry, so the default implementation is capability-absent and the
// runtime-type-registry check records a skipped outcome. Builds that link a
// dynamic runtime (or tests) install a real registry on the Host.
type TypeRegistry interface {
	Supported() bool
	Lookup(typeName string) (RegisteredType, bool)
}

// RegisteredType is a type found in a dynamic registry.
type RegisteredType interface {
	// Responds reports whether the type exposes the named capability
	// (method/selector).
	Responds(capability string) bool
}

type absentTypeRegistry struct{}

func (absentTypeRegistry) Supported() bool { return false }

func (absentTypeRegistry) Lookup(typeName string) (RegisteredType, bool) { return nil, false }
