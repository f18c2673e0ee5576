package inventory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// EditState is the current state of the edit state machine. The zero value is Idle.
type EditState struct {
	Editing bool
	ID      string
}

// Idle is the state in which no row is being edited.
var Idle = EditState{}

// EditingRow is the state in which the row with the given id is being edited.
func EditingRow(id string) EditState {
	return EditState{Editing: true, ID: id}
}

// Editor enforces that at most one row is edited at a time and that no row is deleted
// while an edit is active. All quantity edits and deletions coming from a UI go through it.
type Editor struct {
	mu     sync.Mutex
	state  EditState
	store  *Store
	logger *zap.Logger
}

// NewEditor wires an editor in the Idle state over store.
func NewEditor(store *Store, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{store: store, logger: logger}
}

// State returns the current edit state.
func (e *Editor) State() EditState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// BeginEdit moves from Idle to EditingRow(id) and returns the item so its current
// quantity can prefill the edit input.
func (e *Editor) BeginEdit(id string) (models.StockItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Editing {
		e.logger.Debug("begin edit rejected", zap.String("id", id), zap.String("editing", e.state.ID))
		return models.StockItem{}, &ConflictError{Message: msgEditInProgress}
	}

	item, ok := e.store.Get(id)
	if !ok {
		return models.StockItem{}, ErrItemNotFound
	}

	e.state = EditingRow(id)
	return item, nil
}

// Save commits raw as the new quantity of the row being edited and returns to Idle.
// A validation failure keeps the row in edit mode. The returned bool reports whether
// the item still existed.
func (e *Editor) Save(ctx context.Context, raw string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Editing {
		return false, ErrNoActiveEdit
	}

	updated, err := e.store.UpdateQuantity(ctx, e.state.ID, raw)
	if err != nil {
		return false, err
	}

	if !updated {
		e.logger.Debug("edited item vanished before save", zap.String("id", e.state.ID))
	}
	e.state = Idle
	return updated, nil
}

// Cancel discards the active edit without touching the store.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Idle
}

// Delete removes the item with the given id. It is rejected while any row is being edited.
func (e *Editor) Delete(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Editing {
		return false, &ConflictError{Message: msgDeleteWhileEdit}
	}
	return e.store.Remove(ctx, id)
}

// Add creates a new item. Adding is allowed in any edit state.
func (e *Editor) Add(ctx context.Context, in models.NewStockItem) (models.StockItem, error) {
	return e.store.Add(ctx, in)
}
