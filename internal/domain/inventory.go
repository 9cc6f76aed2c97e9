package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allocation commits a quantity of one inventory item to one event.
type Allocation struct {
	EventID  string `json:"eventId"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// InventoryItem is a rentable vendor asset and the events it is committed to.
// Allocations may exceed TotalQuantity; that state is reported, never clamped.
type InventoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	Vendor        string          `json:"vendor,omitempty"`
	TotalQuantity int             `json:"totalQuantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Allocations   []Allocation    `json:"allocations,omitempty"`
}

// NewInventoryItem creates a validated InventoryItem without allocations.
func NewInventoryItem(id, name string, category Category, totalQuantity int) (*InventoryItem, error) {
	if id == "" {
		return nil, fmt.Errorf("item id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("item name cannot be empty")
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if totalQuantity < 0 {
		return nil, fmt.Errorf("total quantity cannot be negative, got %d", totalQuantity)
	}

	return &InventoryItem{
		ID:            id,
		Name:          name,
		Category:      category,
		TotalQuantity: totalQuantity,
	}, nil
}

// Clone returns a copy that shares no allocation storage with the receiver.
func (i InventoryItem) Clone() InventoryItem {
	if i.Allocations != nil {
		allocs := make([]Allocation, len(i.Allocations))
		copy(allocs, i.Allocations)
		i.Allocations = allocs
	}
	return i
}

// SearchFields lists the text fields matched by free-text search.
func (i InventoryItem) SearchFields() []string {
	return []string{i.Name, i.ID, i.Vendor}
}
