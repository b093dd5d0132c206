package probes

import (
	"context"
	"fmt"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

// Injected type and capability known to be registered by anti-anti-detection
// tooling on dynamic-dispatch runtimes.
const (
	injectedTypeName   = "Shadow"
	injectedCapability = "shadowVersion"
)

type runtimeRegistryCheck struct{}

func (runtimeRegistryCheck) ID() checks.CheckID { return checks.CheckRuntimeTypeRegistry }

func (runtimeRegistryCheck) Title() string { return "Runtime Type Registry Probe" }

func (runtimeRegistryCheck) Description() string {
	return "On platforms exposing a dynamic object/class registry, looks up a type known to be injected by anti-anti-detection tooling and checks whether it exposes its telltale capability. Capability-absent targets record a skipped outcome, never a synthetic pass or fail."
}

func (runtimeRegistryCheck) Category() checks.Category { return checks.CategoryLoader }

func (runtimeRegistryCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	if !env.Registry.Supported() {
		return checks.Skip(checks.CheckRuntimeTypeRegistry,
			"no dynamic type registry on this target"), nil
	}
	typ, ok := env.Registry.Lookup(injectedTypeName)
	if !ok {
		return checks.Pass(checks.CheckRuntimeTypeRegistry), nil
	}
	if !typ.Responds(injectedCapability) {
		// A type with the right name but the wrong shape is not the
		// injected tooling.
		return checks.Pass(checks.CheckRuntimeTypeRegistry), nil
	}
	return checks.Fail(checks.CheckRuntimeTypeRegistry,
		fmt.Sprintf("dynamic registry exposes %s.%s (anti-detection tooling present)",
			injectedTypeName, injectedCapability)), nil
}

func init() {
	checks.Register(runtimeRegistryCheck{})
}
