package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/service/commands"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for stockctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Track stock items from the terminal",
		Long:          "stockctl manages the inventory list stored in the configured slot.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "path to a .env file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))

	return cmd
}

// withApp loads configuration, opens the inventory and runs fn against it.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return err
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Error("failed to close storage", zap.Error(err))
		}
	}()

	return fn(ctx, a)
}

// userError replaces inventory errors with the message meant for the user.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(commands.UserMessage(err))
}
