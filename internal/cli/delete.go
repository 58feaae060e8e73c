package cli

import (
	"bufio"
	"strings"

	"github.com/Backland-Labs/wbpeek/internal/wandb"
	"github.com/spf13/cobra"
)

// newDeleteCommand creates the command deleting a run
func newDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a run",
		Long: `Delete a run from the project. Asks for confirmation unless --yes is given.

Examples:
  wbpeek delete 1a2b3c4d
  wbpeek delete 1a2b3c4d --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]

			cfg, client, err := a.connect()
			if err != nil {
				return err
			}

			if !yes && !a.confirm("Are you sure you want to delete run %s? [y/N]: ", runID) {
				a.deps.Printer.Warning("Deletion cancelled.")
				return nil
			}

			a.deps.Printer.Print("Deleting run %s...\n", runID)
			err = client.DeleteRun(cmd.Context(), wandb.RunPath{Entity: cfg.Entity, Project: cfg.Project, RunID: runID})
			if err != nil {
				return err
			}

			a.deps.Printer.Success("Run %s deleted successfully.", runID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

// confirm prompts on the printer and reads one answer line from stdin. Only
// y or yes, in any case, confirm.
func (a *app) confirm(format string, args ...interface{}) bool {
	a.deps.Printer.Print(format, args...)

	answer, err := bufio.NewReader(a.deps.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
