package flags

// Package flags defines canonical CLI flag names shared across the CLI
// commands. Keeping these as constants helps avoid drift between Cobra flag
// wiring and other code paths that need to reference flags (e.g. config file
// overlay resolution).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Checks.Selector, flags.FlagChecks, "", "...")
//	arg := "--" + flags.FlagChecks
const (
	// Check selection
	FlagChecks      = "checks"
	FlagSet         = "set"
	FlagExtraPaths  = "extra-paths"
	FlagExtraImages = "extra-images"

	// Category toggles
	FlagFilesystem  = "filesystem"
	FlagProcess     = "process"
	FlagLoader      = "loader"
	FlagMemory      = "memory"
	FlagEnvironment = "environment"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagEmit                = "emit"
	FlagNoConsole           = "no-console"

	// Runtime
	FlagProbeTimeout = "probe-timeout"
	FlagLogLevel     = "log-level"
	FlagLogFormat    = "log-format"
	FlagVerbose      = "verbose"
	FlagConfig       = "config"

	// Monitor
	FlagInterval    = "interval"
	FlagWatch       = "watch"
	FlagMetricsAddr = "metrics-addr"
	FlagFailFast    = "fail-fast"
)
