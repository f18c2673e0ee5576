package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

const prompt = "stock> "

// RunShell reads commands from in, one per line, until quit, end of input or
// ctx is cancelled. Replies and error messages are written to out.
func RunShell(ctx context.Context, d Dispatcher, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Fprint(out, prompt)
			continue
		}

		reply, err := d.HandleCommand(ctx, models.ParseCommand(line))
		if errors.Is(err, ErrQuit) {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, UserMessage(err))
		} else {
			fmt.Fprintln(out, reply)
		}
		fmt.Fprint(out, prompt)
	}

	fmt.Fprintln(out)
	return scanner.Err()
}

// UserMessage turns a command error into the text shown to the user.
func UserMessage(err error) string {
	var validationErr *inventory.ValidationError
	var conflictErr *inventory.ConflictError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &conflictErr):
		return conflictErr.Message
	case errors.Is(err, inventory.ErrItemNotFound):
		return "No item with that id."
	case errors.Is(err, inventory.ErrNoActiveEdit):
		return "Nothing is being edited. Use 'edit <id>' first."
	case errors.Is(err, ErrInvalidArguments):
		return "Invalid arguments. Type 'help' for usage."
	case errors.Is(err, ErrUnsupportedCommand):
		return "Unknown command. Type 'help' for usage."
	default:
		return "Error: " + err.Error()
	}
}
