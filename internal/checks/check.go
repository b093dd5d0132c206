package checks

import (
	"context"

	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

// CheckID names one category of evidence. The set is fixed at compile time;
// extend it only by adding variants here and to RunOrder.
type CheckID string

const (
	CheckSuspiciousPathExists   CheckID = "suspicious-path-exists"
	CheckSuspiciousPathOpenable CheckID = "suspicious-path-openable"
	CheckRestrictedWrite        CheckID = "restricted-write"
	CheckSymlinkAnomaly         CheckID = "symlink-anomaly"
	CheckSandboxFork            CheckID = "sandbox-fork"
	CheckTraceFlag              CheckID = "trace-flag"
	CheckParentProcess          CheckID = "parent-process"
	CheckLoaderImage            CheckID = "loader-image"
	CheckRuntimeTypeRegistry    CheckID = "runtime-type-registry"
	CheckBreakpointScan         CheckID = "breakpoint-scan"
	CheckWatchpointScan         CheckID = "watchpoint-scan"
	CheckEmulatorSignal         CheckID = "emulator-signal"
)

// Category groups checks that gather the same class of evidence. A failure
// short-circuits the remaining checks of its category (never of other
// categories), and configuration toggles enable/disable whole categories.
type Category string

const (
	CategoryFilesystem  Category = "filesystem"
	CategoryProcess     Category = "process"
	CategoryLoader      Category = "loader"
	CategoryMemory      Category = "memory"
	CategoryEnvironment Category = "environment"
)

// RunOrder is the canonical execution order: cheapest and least risky
// evidence first, so filesystem before process before loader before
// memory/thread introspection. The runner always walks checks in this order
// regardless of how they were selected.
var RunOrder = []CheckID{
	CheckSuspiciousPathExists,
	CheckSuspiciousPathOpenable,
	CheckRestrictedWrite,
	CheckSymlinkAnomaly,
	CheckSandboxFork,
	CheckTraceFlag,
	CheckParentProcess,
	CheckLoaderImage,
	CheckRuntimeTypeRegistry,
	CheckBreakpointScan,
	CheckWatchpointScan,
	CheckEmulatorSignal,
}

type Check interface {
	ID() CheckID
	Title() string
	Description() string
	Category() Category

	// Evaluate runs the check against the host snapshot. It must not panic
	// and must not propagate OS-call failures as outcomes: an inconclusive
	// probe passes, and the returned error only reports the degraded scope
	// (the runner logs it and counts the run as partial).
	Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (Outcome, error)
}

type Option struct {
	Name        string
	Description string
	Default     string
}

type ConfigurableCheck interface {
	Check
	Options() []Option
	Configure(opts map[string]string) error
}
