package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// ErrInvalidArguments indicates the command arguments could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates the command keyword is not recognised.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrQuit is returned by HandleCommand when the user asked to leave the shell.
var ErrQuit = errors.New("quit")

const dateFormat = "2006-01-02 15:04"

// Help lists the commands understood by the dispatcher.
const Help = `Commands:
  add <name>, <category>, <quantity>[, <unit>]
  edit <id>          start editing the quantity of an item
  save <quantity>    save the quantity of the item being edited
  cancel             leave edit mode
  delete <id>        remove an item
  search <term>      filter by name, category or unit
  list               show every item
  summary            show stock totals
  quit`

// Summarizer produces stock summaries.
type Summarizer interface {
	Summarize() reporting.Summary
}

// Dispatcher executes parsed shell commands against the inventory.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	store     *inventory.Store
	editor    *inventory.Editor
	reporting Summarizer
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(store *inventory.Store, editor *inventory.Editor, reporting Summarizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		editor:    editor,
		reporting: reporting,
		logger:    logger,
	}
}

// HandleCommand runs cmd and returns the text to show the user. Validation and
// conflict errors carry a message meant for the user as well.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandAdd:
		in, err := buildNewItem(cmd)
		if err != nil {
			return "", err
		}
		item, err := s.editor.Add(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %s (%d %s) with id %s.", item.Name, item.Quantity, item.Unit, item.ID), nil
	case models.CommandEdit:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		item, err := s.editor.BeginEdit(cmd.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Editing %s. Current quantity: %d %s. Use 'save <quantity>' or 'cancel'.", item.Name, item.Quantity, item.Unit), nil
	case models.CommandSave:
		if len(cmd.Args) > 1 {
			return "", ErrInvalidArguments
		}
		raw := ""
		if len(cmd.Args) == 1 {
			raw = cmd.Args[0]
		}
		updated, err := s.editor.Save(ctx, raw)
		if err != nil {
			return "", err
		}
		if !updated {
			return "The item no longer exists. Edit closed.", nil
		}
		return "Quantity saved.", nil
	case models.CommandCancel:
		s.editor.Cancel()
		return "Edit cancelled.", nil
	case models.CommandDelete:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		removed, err := s.editor.Delete(ctx, cmd.Args[0])
		if err != nil {
			return "", err
		}
		if !removed {
			return "", inventory.ErrItemNotFound
		}
		return "Item deleted.", nil
	case models.CommandSearch:
		term := ""
		if len(cmd.Args) > 0 {
			term = cmd.Args[0]
		}
		return RenderTable(inventory.BuildTable(s.store.Search(term), s.editor.State())), nil
	case models.CommandList:
		return RenderTable(inventory.BuildTable(s.store.Search(""), s.editor.State())), nil
	case models.CommandSummary:
		if s.reporting == nil {
			return "", ErrUnsupportedCommand
		}
		return reporting.Format(s.reporting.Summarize()), nil
	case models.CommandHelp:
		return Help, nil
	case models.CommandQuit:
		return "", ErrQuit
	default:
		return "", ErrUnsupportedCommand
	}
}

// RenderTable lays a table view out as aligned text columns.
func RenderTable(table inventory.Table) string {
	if table.Empty {
		return "No items in stock."
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQUANTITY\tUNIT\tADDED\tACTIONS")
	for _, row := range table.Rows {
		quantity := fmt.Sprintf("%d", row.Item.Quantity)
		if row.Editing {
			quantity = "[" + quantity + "]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Item.ID,
			row.Item.Name,
			row.Item.Category,
			quantity,
			row.Item.Unit,
			row.Item.DateAdded.Format(dateFormat),
			strings.Join(row.Actions, ","))
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func buildNewItem(cmd models.Command) (models.NewStockItem, error) {
	if len(cmd.Args) < 3 || len(cmd.Args) > 4 {
		return models.NewStockItem{}, ErrInvalidArguments
	}

	in := models.NewStockItem{
		Name:     cmd.Args[0],
		Category: cmd.Args[1],
		Quantity: cmd.Args[2],
	}
	if len(cmd.Args) == 4 {
		in.Unit = cmd.Args[3]
	}
	return in, nil
}
