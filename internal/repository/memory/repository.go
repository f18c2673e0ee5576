package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Repository keeps the inventory slot in process memory. Nothing survives a restart.
type Repository struct {
	mu     sync.Mutex
	items  []models.StockItem
	writes int
}

// NewRepository returns a slot pre-populated with items.
func NewRepository(items ...models.StockItem) *Repository {
	return &Repository{items: slices.Clone(items)}
}

// Read returns a copy of the stored list.
func (r *Repository) Read(_ context.Context) ([]models.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		return []models.StockItem{}, nil
	}
	return slices.Clone(r.items), nil
}

// Write replaces the stored list.
func (r *Repository) Write(_ context.Context, items []models.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = slices.Clone(items)
	r.writes++
	return nil
}

// Writes reports how many times the slot was written.
func (r *Repository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}
