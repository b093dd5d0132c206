package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tamperscan/internal/config"
	"tamperscan/internal/flags"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tamperscan.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestApplyConfigFile_FileOverridesDefaults(t *testing.T) {
	cfgFile = writeConfigFile(t, `
checks:
  selector: trace-flag
output:
  no_console: true
monitor:
  interval: 30s
`)
	defer func() { cfgFile = "" }()

	c := config.New()
	cmd := &cobra.Command{Use: "detect"}

	if err := applyConfigFile(cmd, c); err != nil {
		t.Fatalf("applyConfigFile failed: %v", err)
	}
	if c.Checks.Selector != "trace-flag" {
		t.Errorf("selector = %q, want trace-flag", c.Checks.Selector)
	}
	if !c.Output.NoConsole {
		t.Error("expected no_console from file to apply")
	}
	if c.Monitor.Interval != 30*time.Second {
		t.Errorf("interval = %v, want 30s", c.Monitor.Interval)
	}
	// Untouched fields keep their built-in defaults.
	if !c.Checks.Filesystem {
		t.Error("filesystem category default was clobbered")
	}
}

func TestApplyConfigFile_ExplicitFlagWinsOverFile(t *testing.T) {
	cfgFile = writeConfigFile(t, `
checks:
  selector: trace-flag
`)
	defer func() { cfgFile = "" }()

	c := config.New()
	cmd := &cobra.Command{Use: "detect"}
	cmd.Flags().StringVar(&c.Checks.Selector, flags.FlagChecks, "", "")
	if err := cmd.Flags().Set(flags.FlagChecks, "loader-image"); err != nil {
		t.Fatalf("failed to set checks flag: %v", err)
	}

	if err := applyConfigFile(cmd, c); err != nil {
		t.Fatalf("applyConfigFile failed: %v", err)
	}
	if c.Checks.Selector != "loader-image" {
		t.Errorf("selector = %q, want the flag value loader-image", c.Checks.Selector)
	}
}

func TestApplyConfigFile_MissingFileErrors(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "does-not-exist.yaml")
	defer func() { cfgFile = "" }()

	if err := applyConfigFile(&cobra.Command{Use: "detect"}, config.New()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestApplyConfigFile_NoFileIsNoop(t *testing.T) {
	cfgFile = ""
	c := config.New()
	if err := applyConfigFile(&cobra.Command{Use: "detect"}, c); err != nil {
		t.Fatalf("applyConfigFile failed: %v", err)
	}
	if c.Checks.Selector != "" || !c.Checks.Filesystem {
		t.Error("config mutated without a config file")
	}
}
