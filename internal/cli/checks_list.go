package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tamperscan/internal/checks"
)

var checksListQuiet bool
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Manage and list checks",
	Long: `Manage tamperscan checks.

This command group helps you discover which checks exist and what evidence
each one gathers. Checks are evaluated during detection runs (see
"tamperscan detect --help").

Examples:
  # List all available checks
  tamperscan checks list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var checksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available checks",
	Long: `List all checks currently registered in this build.

Checks are sorted by execution order: cheapest evidence first.

Examples:
  tamperscan checks list

Output:
  A vertical list of checks:
    ----------------------------------------
    CHECK: {ID} ({CATEGORY})
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range checks.List() {
			if checksListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID())
			} else {
				printCheck(cmd.OutOrStdout(), c)
			}
		}
		return nil
	},
}

var checksShowCmd = &cobra.Command{
	Use:   "show [check-id]",
	Short: "Show details of a specific check",
	Long: `Show details of a specific check by its ID.

Examples:
  tamperscan checks show parent-process
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cList, err := checks.Resolve(args[0])
		if err != nil {
			return err
		}
		if len(cList) == 0 {
			return fmt.Errorf("check not found: %s", args[0])
		}
		printCheck(cmd.OutOrStdout(), cList[0])
		return nil
	},
}

func printCheck(w io.Writer, c checks.Check) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CHECK: %s (%s)\n", c.ID(), c.Category())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, c.Title())
	fmt.Fprintln(w, c.Description())

	if cc, ok := c.(checks.ConfigurableCheck); ok {
		opts := cc.Options()
		if len(opts) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Options:")
			for _, opt := range opts {
				def := opt.Default
				if def == "" {
					def = "\"\""
				}
				fmt.Fprintf(w, "  %s\n", opt.Name)
				fmt.Fprintf(w, "    Description: %s\n", opt.Description)
				fmt.Fprintf(w, "    Default:     %s\n", def)
			}
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(checksCmd)
	checksCmd.AddCommand(checksListCmd)
	checksListCmd.Flags().BoolVarP(&checksListQuiet, "quiet", "q", false, "Only print check IDs")
	checksCmd.AddCommand(checksShowCmd)
}
