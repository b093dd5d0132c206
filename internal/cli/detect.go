package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tamperscan/internal/engine"
	"tamperscan/internal/flags"
	"tamperscan/internal/host"
)

const detectHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Exit codes:
  0 = clean run, no compromise evidence
  1 = compromise detected
  2 = partial run (one or more probes degraded)
  3 = fatal error (detection did not run)

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasHelpSubCommands}}Additional help topics:
{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run every enabled check once and report a verdict",
	Long: `Run every enabled check once against the current host and report a verdict.

Checks run in a fixed order, cheapest evidence first: filesystem artifacts,
process and tracer state, loaded modules, memory and thread debug state, and
environment signals. A failing check short-circuits the rest of its category;
other categories still run so the verdict names every independent line of
evidence.

A probe that cannot complete (permission denied, unsupported platform call)
never manufactures evidence: the check passes, the run is marked partial, and
the degraded scope is logged.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON document or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, check.result, run.verdict, run.finished). Check
	outcomes are inlined on the "check.result" event.

Exit codes:
	0 = clean run, no compromise evidence
	1 = compromise detected
	2 = partial run (some probes degraded; evidence may be incomplete)
	3 = fatal error (detection did not run)

Examples:
  # Run everything, human-readable output
  tamperscan detect

  # Stream machine-readable events to stdout
  tamperscan detect --no-console --emit ndjson

  # Skip the memory category and tighten the parent-process check
  tamperscan detect --memory=false --set parent-process.strict=true
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := applyConfigFile(cmd, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		eng := engine.New(host.New(), newLogger(cfg))
		_, code := eng.Run(cmd.Context(), cfg)
		os.Exit(code)
	},
}

// addDetectionFlags registers the flags shared by every command that runs
// checks (detect and monitor).
func addDetectionFlags(cmd *cobra.Command) {
	// Check selection
	cmd.Flags().StringVar(&cfg.Checks.Selector, flags.FlagChecks, "", "Check selector: comma-separated check IDs (empty = all checks)")
	cmd.Flags().StringSliceVar(&cfg.Checks.Set, flags.FlagSet, nil, "Per-check options as checkID.option=value (repeatable; comma-separated accepted)")
	cmd.Flags().StringSliceVar(&cfg.Checks.ExtraPaths, flags.FlagExtraPaths, nil, "Additional absolute paths to treat as compromise artifacts (repeatable; comma-separated accepted)")
	cmd.Flags().StringSliceVar(&cfg.Checks.ExtraImages, flags.FlagExtraImages, nil, "Additional loaded-module substrings to deny (repeatable; comma-separated accepted)")

	// Category toggles
	cmd.Flags().BoolVar(&cfg.Checks.Filesystem, flags.FlagFilesystem, cfg.Checks.Filesystem, "Run filesystem checks")
	cmd.Flags().BoolVar(&cfg.Checks.Process, flags.FlagProcess, cfg.Checks.Process, "Run process checks")
	cmd.Flags().BoolVar(&cfg.Checks.Loader, flags.FlagLoader, cfg.Checks.Loader, "Run loader checks")
	cmd.Flags().BoolVar(&cfg.Checks.Memory, flags.FlagMemory, cfg.Checks.Memory, "Run memory and thread checks")
	cmd.Flags().BoolVar(&cfg.Checks.Environment, flags.FlagEnvironment, cfg.Checks.Environment, "Run environment checks")

	// Output
	cmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson")
	cmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (PASS, FAIL, INFO, SKIPPED). Comma-separated.")
	cmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	cmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	cmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	cmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	cmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")

	// Runtime
	cmd.Flags().DurationVar(&cfg.Runtime.ProbeTimeout, flags.FlagProbeTimeout, cfg.Runtime.ProbeTimeout, "Upper bound for the write and fork probes")
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.SetHelpTemplate(detectHelpTemplate)
	addDetectionFlags(detectCmd)
}
