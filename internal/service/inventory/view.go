package inventory

import (
	"iter"
	"slices"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Row actions offered by the table.
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionSave   = "save"
	ActionCancel = "cancel"
)

// Row is one rendered table line.
type Row struct {
	Item    models.StockItem `json:"item"`
	Editing bool             `json:"editing"`
	Actions []string         `json:"actions"`
}

// Table is what a renderer needs to draw the inventory.
type Table struct {
	Rows      []Row  `json:"rows"`
	Empty     bool   `json:"empty"`
	EditingID string `json:"editingId,omitempty"`
}

// NewestFirst collects seq ordered by DateAdded descending. Ties keep their order.
func NewestFirst(seq iter.Seq[models.StockItem]) []models.StockItem {
	items := slices.Collect(seq)
	slices.SortStableFunc(items, func(a, b models.StockItem) int {
		return b.DateAdded.Compare(a.DateAdded)
	})
	return items
}

// BuildTable lays out seq newest first. The row being edited offers save and cancel;
// every other row keeps edit and delete, which the Editor rejects while the edit is open.
func BuildTable(seq iter.Seq[models.StockItem], state EditState) Table {
	items := NewestFirst(seq)
	table := Table{
		Rows:      make([]Row, 0, len(items)),
		Empty:     len(items) == 0,
		EditingID: state.ID,
	}

	for _, item := range items {
		row := Row{Item: item}
		if state.Editing && state.ID == item.ID {
			row.Editing = true
			row.Actions = []string{ActionSave, ActionCancel}
		} else {
			row.Actions = []string{ActionEdit, ActionDelete}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
