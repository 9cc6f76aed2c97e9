package stats

import (
	"errors"
	"fmt"

	"evplan/internal/domain"
)

var (
	// ErrInvalidQuantity is returned when an allocation request is not a positive quantity.
	ErrInvalidQuantity = errors.New("allocation quantity must be positive")
	// ErrInsufficientCapacity is returned when a request exceeds the item's available quantity.
	ErrInsufficientCapacity = errors.New("allocation exceeds available quantity")
)

// ItemStats is the derived capacity view of a single inventory item.
type ItemStats struct {
	Item         domain.InventoryItem `json:"item"`
	Allocated    int                  `json:"allocated"`
	Available    int                  `json:"available"`
	Utilization  int                  `json:"utilization"`
	HeatmapLevel int                  `json:"heatmapLevel"`
	Status       domain.ItemStatus    `json:"status"`
	EventCount   int                  `json:"eventCount"`
}

func (s ItemStats) SearchFields() []string { return s.Item.SearchFields() }
func (s ItemStats) TypeKey() string        { return string(s.Item.Category) }
func (s ItemStats) StatusKey() string      { return string(s.Status) }

// Allocated sums the quantities of all of the item's allocations.
func Allocated(item domain.InventoryItem) int {
	total := 0
	for _, a := range item.Allocations {
		total += a.Quantity
	}
	return total
}

// Available returns total minus allocated. Negative values signal over-allocation.
func Available(item domain.InventoryItem) int {
	return item.TotalQuantity - Allocated(item)
}

// UtilizationPct returns the rounded allocated share of the total quantity, 0 for empty items.
func UtilizationPct(item domain.InventoryItem) int {
	return Percent(Allocated(item), item.TotalQuantity)
}

// IsLowCapacity reports available < total * ratio.
func IsLowCapacity(item domain.InventoryItem, ratio float64) bool {
	return float64(Available(item)) < float64(item.TotalQuantity)*ratio
}

// ItemStatusOf classifies the item's capacity. Over-allocation wins over every other state.
func ItemStatusOf(item domain.InventoryItem, ratio float64) domain.ItemStatus {
	available := Available(item)
	switch {
	case available < 0:
		return domain.ItemOverallocated
	case available == 0 && item.TotalQuantity > 0:
		return domain.ItemFullyAllocated
	case IsLowCapacity(item, ratio):
		return domain.ItemLowCapacity
	default:
		return domain.ItemAvailable
	}
}

// DeriveItem computes the capacity view of one item.
func DeriveItem(item domain.InventoryItem, opts Options) ItemStats {
	allocated := Allocated(item)
	utilization := Percent(allocated, item.TotalQuantity)

	events := make(map[string]bool)
	for _, a := range item.Allocations {
		if a.Quantity > 0 {
			events[a.EventID] = true
		}
	}

	return ItemStats{
		Item:         item,
		Allocated:    allocated,
		Available:    item.TotalQuantity - allocated,
		Utilization:  utilization,
		HeatmapLevel: HeatmapLevel(float64(utilization)),
		Status:       ItemStatusOf(item, opts.LowCapacityRatio),
		EventCount:   len(events),
	}
}

// DeriveItems applies DeriveItem to every item, keeping input order.
func DeriveItems(items []domain.InventoryItem, opts Options) []ItemStats {
	out := make([]ItemStats, 0, len(items))
	for _, item := range items {
		out = append(out, DeriveItem(item, opts))
	}
	return out
}

// Allocate commits qty units of item to eventID and returns the updated item.
// The input item is never modified; on error it is returned unchanged.
// An existing allocation for the same event is increased instead of duplicated.
func Allocate(item domain.InventoryItem, eventID string, qty int) (domain.InventoryItem, error) {
	if qty <= 0 {
		return item, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	if available := Available(item); qty > available {
		return item, fmt.Errorf("%w: requested %d of %q, only %d available", ErrInsufficientCapacity, qty, item.Name, available)
	}

	updated := item.Clone()
	for i := range updated.Allocations {
		if updated.Allocations[i].EventID == eventID {
			updated.Allocations[i].Quantity += qty
			return updated, nil
		}
	}

	updated.Allocations = append(updated.Allocations, domain.Allocation{
		EventID:  eventID,
		ItemID:   item.ID,
		Quantity: qty,
	})
	return updated, nil
}
