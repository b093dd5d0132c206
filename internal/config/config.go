package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// detection behavior, keep the CLI flags in internal/cli/detect.go and
	// internal/cli/monitor.go in sync.
	Checks  Checks  `mapstructure:"checks"`
	Output  Output  `mapstructure:"output"`
	Runtime Runtime `mapstructure:"runtime"`
	Monitor Monitor `mapstructure:"monitor"`
}

type Checks struct {
	// Selector selects which checks to run.
	// Empty means all checks; otherwise a comma-separated list of check IDs
	// (see --checks).
	Selector string `mapstructure:"selector"`

	// Set provides per-check option overrides from the CLI.
	// Entries are of the form checkID.option=value (repeatable;
	// comma-separated accepted; see --set).
	Set []string `mapstructure:"set"`

	// Per-category enable toggles. A disabled category's checks are not
	// evaluated and produce no outcomes. Disabling everything is not an
	// error: the run completes with an empty, vacuously secure verdict.
	Filesystem  bool `mapstructure:"filesystem"`
	Process     bool `mapstructure:"process"`
	Loader      bool `mapstructure:"loader"`
	Memory      bool `mapstructure:"memory"`
	Environment bool `mapstructure:"environment"`

	// ExtraPaths extends the built-in suspicious path list (see --extra-paths).
	ExtraPaths []string `mapstructure:"extra_paths"`

	// ExtraImages extends the built-in loaded-image deny list
	// (see --extra-images). Matched case-insensitively as substrings.
	ExtraImages []string `mapstructure:"extra_images"`
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format
	// (see --console-format). Allowed values: text, json, ndjson.
	ConsoleFormat string `mapstructure:"console_format"`

	// ConsoleFilterStatus filters console output by outcome status
	// (see --console-filter-status). Allowed values: PASS, FAIL, INFO, SKIPPED.
	ConsoleFilterStatus []string `mapstructure:"console_filter_status"`

	// Report writes a Markdown report to this path (see --report).
	Report string `mapstructure:"report"`

	// Out writes structured output to this path (see --out).
	Out string `mapstructure:"out"`

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, inferred from the extension.
	OutFormat string `mapstructure:"out_format"`

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string `mapstructure:"emit"`

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool `mapstructure:"no_console"`
}

type Runtime struct {
	// ProbeTimeout bounds the two probes that perform real filesystem and
	// process operations (restricted-write and sandbox-fork), so an
	// unusually slow filesystem cannot stall the caller indefinitely.
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`

	// LogLevel sets the logrus level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFormat selects the log formatter: text or json.
	LogFormat string `mapstructure:"log_format"`

	// Verbose enables more detailed diagnostics (primarily for degraded
	// probe reporting). Equivalent to --log-level debug.
	Verbose bool `mapstructure:"verbose"`
}

type Monitor struct {
	// Interval between detection runs in monitor mode (see --interval).
	Interval time.Duration `mapstructure:"interval"`

	// Watch re-triggers a detection run when a watched suspicious path
	// appears on disk (see --watch).
	Watch bool `mapstructure:"watch"`

	// MetricsAddr serves Prometheus metrics on this address when set
	// (see --metrics-addr).
	MetricsAddr string `mapstructure:"metrics_addr"`

	// FailFast exits monitor mode on the first compromised verdict
	// (see --fail-fast).
	FailFast bool `mapstructure:"fail_fast"`
}

func New() *Config {
	return &Config{
		Checks: Checks{
			Filesystem:  true,
			Process:     true,
			Loader:      true,
			Memory:      true,
			Environment: true,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			ProbeTimeout: 2 * time.Second,
			LogLevel:     "info",
			LogFormat:    "text",
		},
		Monitor: Monitor{
			Interval: 5 * time.Minute,
		},
	}
}

// CategoryEnabled maps a check category name onto the per-category toggles.
// Unknown categories are treated as enabled so new categories are not
// silently dropped by stale configs.
func (c *Checks) CategoryEnabled(category string) bool {
	switch category {
	case "filesystem":
		return c.Filesystem
	case "process":
		return c.Process
	case "loader":
		return c.Loader
	case "memory":
		return c.Memory
	case "environment":
		return c.Environment
	default:
		return true
	}
}

// AllDisabled reports whether every check category is toggled off.
func (c *Checks) AllDisabled() bool {
	return !c.Filesystem && !c.Process && !c.Loader && !c.Memory && !c.Environment
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Checks.Set = splitCommaList(c.Checks.Set)
	c.Checks.ExtraPaths = splitCommaList(c.Checks.ExtraPaths)
	c.Checks.ExtraImages = splitCommaList(c.Checks.ExtraImages)

	for _, p := range c.Checks.ExtraPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("extra path must be absolute: %q", p)
		}
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", emit)
		}
	}

	for _, st := range c.Output.ConsoleFilterStatus {
		switch strings.ToUpper(strings.TrimSpace(st)) {
		case "PASS", "FAIL", "INFO", "SKIPPED":
		default:
			return fmt.Errorf("unsupported --console-filter-status value: %s (must be one of: PASS, FAIL, INFO, SKIPPED)", st)
		}
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	// Runtime validation
	if c.Runtime.ProbeTimeout <= 0 {
		return errors.New("--probe-timeout must be > 0")
	}
	c.Runtime.LogLevel = normalizeEnumValue(c.Runtime.LogLevel)
	switch c.Runtime.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported --log-level: %s (must be one of: debug, info, warn, error)", c.Runtime.LogLevel)
	}
	c.Runtime.LogFormat = normalizeEnumValue(c.Runtime.LogFormat)
	switch c.Runtime.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported --log-format: %s (must be one of: text, json)", c.Runtime.LogFormat)
	}

	// Monitor validation
	if c.Monitor.Interval <= 0 {
		return errors.New("--interval must be > 0")
	}

	// Per-check option syntax validation (check.option=value)
	if len(c.Checks.Set) > 0 {
		if _, err := ParseCheckOptionAssignments(c.Checks.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseCheckOptionAssignments parses values of the form "checkID.option=value".
//
// Notes:
// - Entries may be provided via repeated flags and/or comma-delimited lists.
// - This validates syntax only (no validation of check IDs or option names).
// - Empty values are allowed ("check.option=").
func ParseCheckOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range splitCommaList(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		left = strings.TrimSpace(left)
		value = strings.TrimSpace(value)
		checkID, opt, ok := strings.Cut(left, ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		checkID = strings.TrimSpace(checkID)
		opt = strings.TrimSpace(opt)
		if checkID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty check and option", raw)
		}
		if _, ok := out[checkID]; !ok {
			out[checkID] = make(map[string]string)
		}
		out[checkID][opt] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
