package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Backland-Labs/wbpeek/internal/config"
	"github.com/Backland-Labs/wbpeek/internal/logger"
	"github.com/Backland-Labs/wbpeek/internal/wandb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

// Execute runs the CLI
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := NewRealDependencies()
	err := NewRootCommand(deps).ExecuteContext(ctx)
	if err != nil {
		deps.Printer.Error("Error: %v", err)
	}
	_ = logger.GetLogger().Sync()
	return err
}

// app carries what every subcommand needs: injected dependencies and the
// viper instance the persistent flags are bound to
type app struct {
	deps    *Dependencies
	v       *viper.Viper
	verbose bool
	debug   bool
}

// connect loads the configuration, initializes logging and creates the API
// client
func (a *app) connect() (*config.Config, wandb.Client, error) {
	switch {
	case a.debug:
		a.v.Set(config.KeyVerbosity, string(config.VerbosityDebug))
	case a.verbose:
		a.v.Set(config.KeyVerbosity, string(config.VerbosityVerbose))
	}

	cfg, err := a.deps.ConfigLoader.Load(a.v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitializeFromConfig(cfg)
	logger.WithFields(map[string]interface{}{
		"entity":  cfg.Entity,
		"project": cfg.Project,
		"api":     cfg.API.BaseURL,
	}).Debug("Configuration loaded")

	client, err := a.deps.ClientFactory.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return cfg, client, nil
}

// NewRootCommand creates the root command
func NewRootCommand(deps *Dependencies) *cobra.Command {
	a := &app{deps: deps, v: config.NewViper()}
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "wbpeek",
		Short: "wbpeek - inspect Weights & Biases runs from the terminal",
		Long: `wbpeek - inspect Weights & Biases runs from the terminal

wbpeek lists recent runs of a project, prints run configs and shows which
parameters vary across a run group.

Examples:
  wbpeek fetch --hours 24
  wbpeek fetch --group sweep-3 --filters '{"state": "running"}'
  wbpeek config 1a2b3c4d --output yaml
  wbpeek flag 1a2b3c4d optimizer.lr
  wbpeek vary sweep-3
  wbpeek delete 1a2b3c4d --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "wbpeek version "+version)
				return err
			}
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	flags := cmd.PersistentFlags()
	flags.String("entity", "", "W&B entity (user or team), overrides WANDB_ENTITY")
	flags.String("project", "", "W&B project, overrides WANDB_PROJECT")
	flags.BoolVar(&a.verbose, "verbose", false, "Log API requests")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging and strict feed order checks")
	_ = a.v.BindPFlag(config.KeyEntity, flags.Lookup("entity"))
	_ = a.v.BindPFlag(config.KeyProject, flags.Lookup("project"))

	cmd.AddCommand(
		newFetchCommand(a),
		newConfigCommand(a),
		newFlagCommand(a),
		newVaryCommand(a),
		newDeleteCommand(a),
	)

	return cmd
}
