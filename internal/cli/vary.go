package cli

import (
	"fmt"

	"github.com/Backland-Labs/wbpeek/internal/logger"
	"github.com/Backland-Labs/wbpeek/internal/params"
	"github.com/Backland-Labs/wbpeek/internal/runs"
	"github.com/Backland-Labs/wbpeek/internal/wandb"
	"github.com/spf13/cobra"
)

// newVaryCommand creates the command comparing configs across a run group
func newVaryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vary <group>",
		Short: "Show parameters that differ across a run group",
		Long: `Compare the flattened configs of every run in a group and print the
parameters that take more than one value. A parameter some runs lack is
reported with the value <MISSING>.

Examples:
  wbpeek vary sweep-3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := args[0]

			cfg, client, err := a.connect()
			if err != nil {
				return err
			}

			progress := a.deps.Printer.StartProgress(fmt.Sprintf("Fetching runs in group %s...", group))
			defer progress.Stop()

			feed := client.Runs(cmd.Context(), wandb.RunQuery{
				Entity:  cfg.Entity,
				Project: cfg.Project,
				Filters: runs.Filters{"group": group},
			})

			acc := params.NewAccumulator()
			n := 0
			for run, err := range feed {
				if err != nil {
					return fmt.Errorf("failed to fetch runs in group %s: %w", group, err)
				}
				acc.Add(params.Flatten(run.Config, ""))
				n++
				progress.SetCount(n)
			}
			progress.Stop()

			report := acc.Report()
			log := logger.WithFields(map[string]interface{}{
				"group":   group,
				"runs":    report.Runs,
				"varying": len(report.Keys),
				"outcome": report.Outcome.String(),
			})
			if report.Fallbacks > 0 {
				log.Debugf("%d values could not be encoded as JSON and were compared by their printed form", report.Fallbacks)
			}
			log.Info("Variance computed")

			a.deps.Printer.PrintVariance(group, report)
			return nil
		},
	}

	return cmd
}
