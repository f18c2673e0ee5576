package inventory

import "errors"

// ErrItemNotFound indicates the referenced stock item is not in the list.
var ErrItemNotFound = errors.New("stock item not found")

// ErrNoActiveEdit indicates a save was requested while no row is being edited.
var ErrNoActiveEdit = errors.New("no edit in progress")

// ValidationError reports bad user input. The store state is untouched when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ConflictError reports an action rejected because another edit is active.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

const (
	msgInvalidItem     = "Please fill out all fields correctly."
	msgInvalidQuantity = "Please enter a valid non-negative quantity."
	msgEditInProgress  = "Please save or cancel the current edit first."
	msgDeleteWhileEdit = "Please save or cancel the current edit before deleting an item."
)
