package reporting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ItemSource exposes the current inventory list.
type ItemSource interface {
	Items() []models.StockItem
}

// Summary aggregates the inventory for reports and notifications.
type Summary struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Items       int            `json:"items"`
	UnitTotals  map[string]int `json:"unitTotals"`
	Categories  map[string]int `json:"categories"`
	OutOfStock  []string       `json:"outOfStock"`
	NewestItem  string         `json:"newestItem,omitempty"`
	OldestAdded *time.Time     `json:"oldestAdded,omitempty"`
}

// Service builds stock summaries from an item source.
type Service struct {
	source ItemSource
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(source ItemSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger, now: time.Now}
}

// Summarize aggregates the current inventory.
func (s *Service) Summarize() Summary {
	items := s.source.Items()
	summary := Summary{
		GeneratedAt: s.now().UTC(),
		Items:       len(items),
		UnitTotals:  make(map[string]int),
		Categories:  make(map[string]int),
		OutOfStock:  []string{},
	}

	var newest, oldest *models.StockItem
	for i := range items {
		item := &items[i]
		summary.UnitTotals[item.Unit] += item.Quantity
		summary.Categories[item.Category]++
		if item.Quantity == 0 {
			summary.OutOfStock = append(summary.OutOfStock, item.Name)
		}
		if newest == nil || item.DateAdded.After(newest.DateAdded) {
			newest = item
		}
		if oldest == nil || item.DateAdded.Before(oldest.DateAdded) {
			oldest = item
		}
	}

	if newest != nil {
		summary.NewestItem = newest.Name
	}
	if oldest != nil {
		added := oldest.DateAdded
		summary.OldestAdded = &added
	}
	slices.Sort(summary.OutOfStock)

	s.logger.Debug("inventory summarized", zap.Int("items", summary.Items), zap.Int("out_of_stock", len(summary.OutOfStock)))
	return summary
}

// Format renders a summary as a short plain-text message.
func Format(summary Summary) string {
	if summary.Items == 0 {
		return fmt.Sprintf("Stock summary (%s): inventory is empty.", summary.GeneratedAt.Format(dateLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock summary (%s): %d items across %d categories.", summary.GeneratedAt.Format(dateLayout), summary.Items, len(summary.Categories))

	units := make([]string, 0, len(summary.UnitTotals))
	for unit := range summary.UnitTotals {
		units = append(units, unit)
	}
	slices.Sort(units)

	totals := make([]string, 0, len(units))
	for _, unit := range units {
		totals = append(totals, fmt.Sprintf("%d %s", summary.UnitTotals[unit], unit))
	}
	fmt.Fprintf(&b, "\nOn hand: %s.", strings.Join(totals, ", "))

	if len(summary.OutOfStock) > 0 {
		fmt.Fprintf(&b, "\nOut of stock: %s.", strings.Join(summary.OutOfStock, ", "))
	}
	if summary.NewestItem != "" {
		fmt.Fprintf(&b, "\nLatest addition: %s.", summary.NewestItem)
	}
	return b.String()
}
