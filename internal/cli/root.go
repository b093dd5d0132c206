package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tamperscan/internal/config"
	"tamperscan/internal/flags"
	"tamperscan/internal/logging"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tamperscan",
	Short: "Detect jailbreak artifacts, attached debuggers, and injected tooling on the running host",
	Long: `Tamperscan inspects the host it runs on for evidence of compromise: jailbreak
and rooting artifacts on disk, attached debuggers and tracers, injected
instrumentation frameworks, and hardware debug state.

Tamperscan is detect-only: it gathers evidence and reports a verdict, it does
not remediate and does not self-terminate.

Examples:
	# Show available commands and global flags
	tamperscan --help

	# Run every check once
	tamperscan detect

	# Run continuously with Prometheus metrics
	tamperscan monitor --metrics-addr :9464

	# List checks
	tamperscan checks list

	# Print build info
	tamperscan version

Output:
	By default, commands write human-readable output to stdout.
	Some commands support structured output via emitter flags (see each command's --help).`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (reports every degraded probe with full error details)")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogLevel, flags.FlagLogLevel, cfg.Runtime.LogLevel, "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogFormat, flags.FlagLogFormat, cfg.Runtime.LogFormat, "Log format: text|json")
	rootCmd.PersistentFlags().StringVar(&cfgFile, flags.FlagConfig, "", "Config file path (YAML/TOML/JSON); flags override file values")
}

// newLogger builds the process logger from the runtime config. Logs go to
// stderr so stdout stays reserved for the structured output sinks.
func newLogger(cfg *config.Config) *logrus.Logger {
	return logging.New(logging.Options{
		Level:   cfg.Runtime.LogLevel,
		Format:  cfg.Runtime.LogFormat,
		Verbose: cfg.Runtime.Verbose,
	})
}

// applyConfigFile overlays values from --config onto cfg for every field
// whose flag the user did not set explicitly. Precedence is therefore
// built-in defaults < config file < command-line flags.
func applyConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	if cfgFile == "" {
		return nil
	}
	fromFile := config.New()
	if err := config.LoadFile(cfgFile, fromFile); err != nil {
		return err
	}

	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	overlay := []struct {
		flag  string
		apply func(dst, src *config.Config)
	}{
		{flags.FlagChecks, func(d, s *config.Config) { d.Checks.Selector = s.Checks.Selector }},
		{flags.FlagSet, func(d, s *config.Config) { d.Checks.Set = s.Checks.Set }},
		{flags.FlagExtraPaths, func(d, s *config.Config) { d.Checks.ExtraPaths = s.Checks.ExtraPaths }},
		{flags.FlagExtraImages, func(d, s *config.Config) { d.Checks.ExtraImages = s.Checks.ExtraImages }},
		{flags.FlagFilesystem, func(d, s *config.Config) { d.Checks.Filesystem = s.Checks.Filesystem }},
		{flags.FlagProcess, func(d, s *config.Config) { d.Checks.Process = s.Checks.Process }},
		{flags.FlagLoader, func(d, s *config.Config) { d.Checks.Loader = s.Checks.Loader }},
		{flags.FlagMemory, func(d, s *config.Config) { d.Checks.Memory = s.Checks.Memory }},
		{flags.FlagEnvironment, func(d, s *config.Config) { d.Checks.Environment = s.Checks.Environment }},
		{flags.FlagConsoleFormat, func(d, s *config.Config) { d.Output.ConsoleFormat = s.Output.ConsoleFormat }},
		{flags.FlagConsoleFilterStatus, func(d, s *config.Config) { d.Output.ConsoleFilterStatus = s.Output.ConsoleFilterStatus }},
		{flags.FlagReport, func(d, s *config.Config) { d.Output.Report = s.Output.Report }},
		{flags.FlagOut, func(d, s *config.Config) { d.Output.Out = s.Output.Out }},
		{flags.FlagOutFormat, func(d, s *config.Config) { d.Output.OutFormat = s.Output.OutFormat }},
		{flags.FlagEmit, func(d, s *config.Config) { d.Output.Emit = s.Output.Emit }},
		{flags.FlagNoConsole, func(d, s *config.Config) { d.Output.NoConsole = s.Output.NoConsole }},
		{flags.FlagProbeTimeout, func(d, s *config.Config) { d.Runtime.ProbeTimeout = s.Runtime.ProbeTimeout }},
		{flags.FlagLogLevel, func(d, s *config.Config) { d.Runtime.LogLevel = s.Runtime.LogLevel }},
		{flags.FlagLogFormat, func(d, s *config.Config) { d.Runtime.LogFormat = s.Runtime.LogFormat }},
		{flags.FlagVerbose, func(d, s *config.Config) { d.Runtime.Verbose = s.Runtime.Verbose }},
		{flags.FlagInterval, func(d, s *config.Config) { d.Monitor.Interval = s.Monitor.Interval }},
		{flags.FlagWatch, func(d, s *config.Config) { d.Monitor.Watch = s.Monitor.Watch }},
		{flags.FlagMetricsAddr, func(d, s *config.Config) { d.Monitor.MetricsAddr = s.Monitor.MetricsAddr }},
		{flags.FlagFailFast, func(d, s *config.Config) { d.Monitor.FailFast = s.Monitor.FailFast }},
	}
	for _, entry := range overlay {
		if !changed(entry.flag) {
			entry.apply(cfg, fromFile)
		}
	}
	return nil
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
