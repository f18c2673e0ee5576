package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/commands"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show stock items, newest first",
		Example: `  stockctl list
  stockctl list --search baking`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(_ context.Context, a *app.App) error {
				table := inventory.BuildTable(a.Store.Search(search), a.Editor.State())
				return printResult(cmd.OutOrStdout(), opts, commands.RenderTable(table), table)
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only show items whose name, category or unit contains this term")
	return cmd
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name> <category> <quantity> [unit]",
		Short:   "Add a stock item",
		Example: `  stockctl add "Whole wheat flour" Baking 5 kg`,
		Args:    cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.NewStockItem{Name: args[0], Category: args[1], Quantity: args[2]}
			if len(args) == 4 {
				in.Unit = args[3]
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				item, err := a.Editor.Add(ctx, in)
				if err != nil {
					return userError(err)
				}
				text := fmt.Sprintf("Added %s (%d %s) with id %s.", item.Name, item.Quantity, item.Unit, item.ID)
				return printResult(cmd.OutOrStdout(), opts, text, item)
			})
		},
	}

	// Quantities such as -3 are arguments, not shorthand flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stock item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				removed, err := a.Editor.Delete(ctx, args[0])
				if err != nil {
					return userError(err)
				}
				if !removed {
					return userError(inventory.ErrItemNotFound)
				}
				return printResult(cmd.OutOrStdout(), opts, "Item deleted.", map[string]string{"deleted": args[0]})
			})
		},
	}
}

// NewSetCommand creates the set command, a one-shot edit of an item's quantity.
func NewSetCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set <id> <quantity>",
		Short:   "Set the quantity of a stock item",
		Example: `  stockctl set 3f2c... 12`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				if _, err := a.Editor.BeginEdit(args[0]); err != nil {
					return userError(err)
				}
				updated, err := a.Editor.Save(ctx, args[1])
				if err != nil {
					a.Editor.Cancel()
					return userError(err)
				}
				if !updated {
					return userError(inventory.ErrItemNotFound)
				}

				item, _ := a.Store.Get(args[0])
				text := fmt.Sprintf("%s now at %d %s.", item.Name, item.Quantity, item.Unit)
				return printResult(cmd.OutOrStdout(), opts, text, item)
			})
		},
	}

	cmd.Flags().SetInterspersed(false)
	return cmd
}
