package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Backland-Labs/wbpeek/internal/output"
	"github.com/Backland-Labs/wbpeek/internal/params"
	"github.com/Backland-Labs/wbpeek/internal/wandb"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the command printing a run's config
func newConfigCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config <run-id>",
		Short: "Print the configuration of a run",
		Long: `Print the configuration of a run as indented text, JSON or YAML.

Examples:
  wbpeek config 1a2b3c4d
  wbpeek config 1a2b3c4d --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(output.Formats, format) {
				return fmt.Errorf("--output must be one of: %s, got: %s", strings.Join(output.Formats, ", "), format)
			}

			cfg, client, err := a.connect()
			if err != nil {
				return err
			}

			runID := args[0]
			run, err := client.Run(cmd.Context(), wandb.RunPath{Entity: cfg.Entity, Project: cfg.Project, RunID: runID})
			if err != nil {
				return err
			}

			return a.deps.Printer.PrintConfig(runID, run.Config, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", output.FormatText, "Output format: text, json or yaml")

	return cmd
}

// newFlagCommand creates the command printing one config value of a run
func newFlagCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flag <run-id> <key>",
		Short: "Print a single configuration value of a run",
		Long: `Print a single configuration value of a run. Nested values are
addressed with dotted keys such as optimizer.lr.

Examples:
  wbpeek flag 1a2b3c4d learning_rate
  wbpeek flag 1a2b3c4d optimizer.lr`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := a.connect()
			if err != nil {
				return err
			}

			runID, key := args[0], args[1]
			run, err := client.Run(cmd.Context(), wandb.RunPath{Entity: cfg.Entity, Project: cfg.Project, RunID: runID})
			if err != nil {
				return err
			}

			value, ok := params.Lookup(run.Config, key)
			if !ok {
				a.deps.Printer.Notice("Flag '%s' not found in run %s.", key, runID)
				return nil
			}
			a.deps.Printer.PrintFlag(key, value)
			return nil
		},
	}

	return cmd
}
