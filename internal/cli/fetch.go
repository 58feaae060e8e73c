package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/Backland-Labs/wbpeek/internal/logger"
	"github.com/Backland-Labs/wbpeek/internal/output"
	"github.com/Backland-Labs/wbpeek/internal/runs"
	"github.com/Backland-Labs/wbpeek/internal/wandb"
	"github.com/spf13/cobra"
)

const defaultHours = 10

// maxHours is the largest window that fits in a time.Duration
const maxHours = math.MaxInt64 / int64(time.Hour)

// newFetchCommand creates the command listing recently started runs
func newFetchCommand(a *app) *cobra.Command {
	var hours int
	var group string
	var filtersJSON string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "List runs started in the last hours",
		Long: `List the project's runs started within the last N hours, newest first.

Examples:
  wbpeek fetch
  wbpeek fetch -H 48 --group sweep-3
  wbpeek fetch --filters '{"state": "running"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hours <= 0 {
				return fmt.Errorf("--hours must be positive, got %d", hours)
			}
			if int64(hours) > maxHours {
				return fmt.Errorf("--hours must be at most %d, got %d", maxHours, hours)
			}
			filters, err := runs.BuildFilters(group, filtersJSON)
			if err != nil {
				return err
			}

			cfg, client, err := a.connect()
			if err != nil {
				return err
			}

			now := a.deps.Clock.Now()
			var opts []runs.ScanOption
			if cfg.IsDebug() {
				opts = append(opts, runs.WithStrictOrder())
			}
			scanner := runs.NewScanner(now, time.Duration(hours)*time.Hour, opts...)

			timer := logger.GetLogger().Timed("fetch runs")
			progress := a.deps.Printer.StartProgress("Fetching runs...")
			defer progress.Stop()

			feed := client.Runs(cmd.Context(), wandb.RunQuery{
				Entity:  cfg.Entity,
				Project: cfg.Project,
				Filters: filters,
				Order:   wandb.OrderNewestFirst,
			})

			var rows []runs.Row
			for run, err := range scanner.Scan(feed) {
				if err != nil {
					return fmt.Errorf("failed to fetch runs: %w", err)
				}
				row, err := runs.Project(run, now)
				if err != nil {
					return err
				}
				rows = append(rows, row)
				progress.SetCount(len(rows))
			}
			timer.Done()
			progress.Stop()

			logger.WithFields(map[string]interface{}{
				"runs":      scanner.Count(),
				"running":   scanner.RunningCount(),
				"threshold": scanner.Threshold().Format(time.RFC3339),
			}).Info("Scan finished")

			a.deps.Printer.PrintRuns(output.RunTable{
				Hours:   hours,
				Filters: filters,
				Rows:    rows,
				Running: scanner.RunningCount(),
			})
			return nil
		},
	}

	cmd.Flags().IntVarP(&hours, "hours", "H", defaultHours, "Show runs started within this many hours")
	cmd.Flags().StringVar(&group, "group", "", "Only show runs in this group")
	cmd.Flags().StringVar(&filtersJSON, "filters", "", "Additional filters as a JSON object")

	return cmd
}
