package models

import "time"

// DefaultUnit is assigned to records persisted before units were tracked.
const DefaultUnit = "pcs"

// StockItem is one tracked inventory record. Only Quantity changes after creation.
type StockItem struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Unit      string    `json:"unit" bson:"unit"`
	DateAdded time.Time `json:"dateAdded" bson:"dateAdded"`
}

// NewStockItem carries the raw form values used to create a StockItem.
// Parsing and trimming happen in the inventory store.
type NewStockItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Normalize applies the unit default-fill rule. Applying it twice is the same as once.
func Normalize(item StockItem) StockItem {
	if item.Unit == "" {
		item.Unit = DefaultUnit
	}
	return item
}
