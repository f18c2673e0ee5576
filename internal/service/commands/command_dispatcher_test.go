package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

func newDispatcher(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()

	minutes := 0
	ids := 0
	slot := memory.NewRepository()
	store := inventory.NewStore(slot, nil,
		inventory.WithClock(func() time.Time {
			minutes++
			return time.Date(2025, 4, 1, 12, minutes, 0, 0, time.UTC)
		}),
		inventory.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("item-%d", ids)
		}))
	store.Load(context.Background())
	editor := inventory.NewEditor(store, nil)
	return NewService(store, editor, reporting.NewService(store, nil), nil), slot
}

func run(t *testing.T, s *Service, line string) (string, error) {
	t.Helper()
	return s.HandleCommand(context.Background(), models.ParseCommand(line))
}

func TestHandleCommand_Add(t *testing.T) {
	s, slot := newDispatcher(t)

	reply, err := run(t, s, "add Flour, Baking, 5, kg")
	require.NoError(t, err)
	assert.Equal(t, "Added Flour (5 kg) with id item-1.", reply)

	reply, err = run(t, s, "add Rice, Grains, 2")
	require.NoError(t, err)
	assert.Equal(t, "Added Rice (2 pcs) with id item-2.", reply)
	assert.Equal(t, 2, slot.Writes())

	_, err = run(t, s, "add Rice, Grains")
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = run(t, s, "add Rice, Grains, zero, kg")
	var validationErr *inventory.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Please fill out all fields correctly.", UserMessage(err))
}

func TestHandleCommand_EditSaveCancel(t *testing.T) {
	s, _ := newDispatcher(t)
	_, err := run(t, s, "add Flour, Baking, 5, kg")
	require.NoError(t, err)
	_, err = run(t, s, "add Rice, Grains, 2, kg")
	require.NoError(t, err)

	reply, err := run(t, s, "edit item-1")
	require.NoError(t, err)
	assert.Contains(t, reply, "Current quantity: 5 kg")

	_, err = run(t, s, "edit item-2")
	assert.Equal(t, "Please save or cancel the current edit first.", UserMessage(err))

	_, err = run(t, s, "delete item-2")
	assert.Equal(t, "Please save or cancel the current edit before deleting an item.", UserMessage(err))

	_, err = run(t, s, "save")
	assert.Equal(t, "Please enter a valid non-negative quantity.", UserMessage(err))

	_, err = run(t, s, "save 5 6")
	assert.ErrorIs(t, err, ErrInvalidArguments)
	assert.Equal(t, inventory.EditingRow("item-1"), s.editor.State())

	reply, err = run(t, s, "list")
	require.NoError(t, err)
	assert.Contains(t, reply, "[5]")

	reply, err = run(t, s, "save 3")
	require.NoError(t, err)
	assert.Equal(t, "Quantity saved.", reply)

	_, err = run(t, s, "save 4")
	assert.ErrorIs(t, err, inventory.ErrNoActiveEdit)

	_, err = run(t, s, "edit item-2")
	require.NoError(t, err)
	reply, err = run(t, s, "cancel")
	require.NoError(t, err)
	assert.Equal(t, "Edit cancelled.", reply)

	reply, err = run(t, s, "delete item-2")
	require.NoError(t, err)
	assert.Equal(t, "Item deleted.", reply)

	_, err = run(t, s, "delete item-2")
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}

func TestHandleCommand_SearchAndList(t *testing.T) {
	s, _ := newDispatcher(t)

	reply, err := run(t, s, "list")
	require.NoError(t, err)
	assert.Equal(t, "No items in stock.", reply)

	_, err = run(t, s, "add Flour, Baking, 5, kg")
	require.NoError(t, err)
	_, err = run(t, s, "add Sugar, Baking, 2, bags")
	require.NoError(t, err)
	_, err = run(t, s, "add Rice, Grains, 10, kg")
	require.NoError(t, err)

	reply, err = run(t, s, "search BAKING")
	require.NoError(t, err)
	lines := strings.Split(reply, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Sugar")
	assert.Contains(t, lines[2], "Flour")

	reply, err = run(t, s, "list")
	require.NoError(t, err)
	assert.Len(t, strings.Split(reply, "\n"), 4)
}

func TestHandleCommand_SummaryHelpQuitUnknown(t *testing.T) {
	s, _ := newDispatcher(t)
	_, err := run(t, s, "add Flour, Baking, 5, kg")
	require.NoError(t, err)

	reply, err := run(t, s, "summary")
	require.NoError(t, err)
	assert.Contains(t, reply, "1 items across 1 categories")

	reply, err = run(t, s, "help")
	require.NoError(t, err)
	assert.Equal(t, Help, reply)

	_, err = run(t, s, "quit")
	assert.ErrorIs(t, err, ErrQuit)

	_, err = run(t, s, "dance")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestRunShell(t *testing.T) {
	s, slot := newDispatcher(t)
	input := strings.Join([]string{
		"add Flour, Baking, 5, kg",
		"",
		"edit item-1",
		"delete item-1",
		"save 7",
		"quit",
		"add Never, Reached, 1",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, RunShell(context.Background(), s, strings.NewReader(input), &out))

	text := out.String()
	assert.Contains(t, text, "Added Flour (5 kg) with id item-1.")
	assert.Contains(t, text, "Please save or cancel the current edit before deleting an item.")
	assert.Contains(t, text, "Quantity saved.")
	assert.Contains(t, text, "Bye.")
	assert.NotContains(t, text, "Never")
	assert.Equal(t, 2, slot.Writes())
}

func TestRunShell_EndOfInput(t *testing.T) {
	s, _ := newDispatcher(t)
	var out bytes.Buffer
	require.NoError(t, RunShell(context.Background(), s, strings.NewReader("list"), &out))
	assert.Contains(t, out.String(), "No items in stock.")
}

func TestRunShell_CancelledContext(t *testing.T) {
	s, _ := newDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := RunShell(ctx, s, strings.NewReader("list\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
}
