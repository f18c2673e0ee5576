package inventory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Slot is the durable storage holding the whole serialized inventory list.
type Slot interface {
	// Read returns the stored list, or an empty list when the slot was never written.
	Read(ctx context.Context) ([]models.StockItem, error)
	// Write replaces the slot contents with items.
	Write(ctx context.Context, items []models.StockItem) error
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp DateAdded.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id source for new items.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store owns the canonical inventory list and mirrors every committed mutation to its Slot.
type Store struct {
	mu     sync.Mutex
	items  []models.StockItem
	slot   Slot
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewStore builds an empty store backed by slot. Call Load to read persisted items.
func NewStore(slot Slot, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		slot:   slot,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the slot contents. Read failures degrade to an
// empty list. Missing units are filled in memory and written back on the next mutation.
func (s *Store) Load(ctx context.Context) []models.StockItem {
	stored, err := s.slot.Read(ctx)
	if err != nil {
		s.logger.Warn("failed to read inventory slot, starting empty", zap.Error(err))
		stored = nil
	}

	items := make([]models.StockItem, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		if item.ID == "" || item.Quantity < 0 {
			s.logger.Warn("skip invalid stock item", zap.String("id", item.ID), zap.Int("quantity", item.Quantity))
			continue
		}
		if _, dup := seen[item.ID]; dup {
			s.logger.Warn("skip duplicate stock item id", zap.String("id", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, models.Normalize(item))
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info("inventory loaded", zap.Int("items", len(items)))
	return slices.Clone(items)
}

// Add validates the raw form values, appends a new item and persists the list.
func (s *Store) Add(ctx context.Context, in models.NewStockItem) (models.StockItem, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	unit := strings.TrimSpace(in.Unit)

	switch {
	case name == "":
		return models.StockItem{}, &ValidationError{Field: "name", Message: msgInvalidItem}
	case category == "":
		return models.StockItem{}, &ValidationError{Field: "category", Message: msgInvalidItem}
	}

	quantity, err := parseQuantity(in.Quantity)
	if err != nil || quantity < 1 {
		return models.StockItem{}, &ValidationError{Field: "quantity", Message: msgInvalidItem}
	}

	if unit == "" {
		unit = models.DefaultUnit
	}

	item := models.StockItem{
		ID:        s.newID(),
		Name:      name,
		Category:  category,
		Quantity:  quantity,
		Unit:      unit,
		DateAdded: s.now().UTC().Truncate(time.Millisecond),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.items), item)
	if err := s.commit(ctx, next); err != nil {
		return models.StockItem{}, err
	}

	s.logger.Debug("stock item added", zap.String("id", item.ID), zap.String("name", item.Name), zap.Int("quantity", item.Quantity))
	return item, nil
}

// Remove deletes the item with the given id. It reports false when no such item exists.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.items), idx, idx+1)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.logger.Debug("stock item removed", zap.String("id", id))
	return true, nil
}

// UpdateQuantity parses raw and sets it as the quantity of the item with the given id.
// It reports false, without writing, when the id is unknown.
func (s *Store) UpdateQuantity(ctx context.Context, id, raw string) (bool, error) {
	quantity, err := parseQuantity(raw)
	if err != nil || quantity < 0 {
		return false, &ValidationError{Field: "quantity", Message: msgInvalidQuantity}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Clone(s.items)
	next[idx].Quantity = quantity
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.logger.Debug("stock quantity updated", zap.String("id", id), zap.Int("quantity", quantity))
	return true, nil
}

// Search yields the items whose name, category or unit contain term, ignoring case.
// Only the empty term yields every item; whitespace is matched literally. The sequence
// ranges over a snapshot taken now and can be iterated any number of times.
func (s *Store) Search(term string) iter.Seq[models.StockItem] {
	needle := cases.Fold().String(term)
	snapshot := s.Items()

	return func(yield func(models.StockItem) bool) {
		fold := cases.Fold()
		for _, item := range snapshot {
			if needle != "" && !matches(fold, item, needle) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (models.StockItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.StockItem{}, false
	}
	return s.items[idx], true
}

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of items in the list.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// commit writes next to the slot and only then makes it the current list. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []models.StockItem) error {
	if err := s.slot.Write(ctx, next); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}
	s.items = next
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item models.StockItem) bool { return item.ID == id })
}

// matches reports whether any searchable field contains needle. needle is already folded.
func matches(fold cases.Caser, item models.StockItem, needle string) bool {
	for _, field := range []string{item.Name, item.Category, item.Unit} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

func parseQuantity(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
