package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/service/commands"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show stock totals per unit and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(_ context.Context, a *app.App) error {
				summary := a.Reporting.Summarize()
				return printResult(cmd.OutOrStdout(), opts, reporting.Format(summary), summary)
			})
		},
	}
}

// NewShellCommand creates the interactive shell command.
func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive inventory shell",
		Long: `Start an interactive shell over the inventory.

The shell keeps one edit open at a time: 'edit <id>' opens a row, 'save <quantity>'
or 'cancel' closes it, and deletes are refused while an edit is open.
Type 'help' inside the shell for the full command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				dispatcher := commands.NewService(a.Store, a.Editor, a.Reporting, nil)
				return commands.RunShell(ctx, dispatcher, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}
