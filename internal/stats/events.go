package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"evplan/internal/domain"
)

// EventUsage is the inventory footprint of a single event.
type EventUsage struct {
	EventID     string           `json:"eventId"`
	Name        string           `json:"name"`
	Type        domain.EventType `json:"type"`
	Date        time.Time        `json:"date"`
	ItemCount   int              `json:"itemCount"`
	Allocated   int              `json:"allocated"`
	Capacity    int              `json:"capacity"`
	Utilization int              `json:"utilization"`
	Revenue     decimal.Decimal  `json:"revenue"`
}

// EventPerformance sums, per event, the allocated units and the total capacity of the items
// allocated to it. Events without allocations are dropped; input order is kept.
func EventPerformance(items []domain.InventoryItem, events []domain.Event, opts Options) []EventUsage {
	type acc struct{ items, allocated, capacity int }
	byEvent := make(map[string]*acc)

	for _, item := range items {
		// An item with two allocation rows for one event still contributes its capacity once.
		seen := make(map[string]bool)
		for _, a := range item.Allocations {
			u, ok := byEvent[a.EventID]
			if !ok {
				u = &acc{}
				byEvent[a.EventID] = u
			}
			u.allocated += a.Quantity
			if !seen[a.EventID] {
				seen[a.EventID] = true
				u.items++
				u.capacity += item.TotalQuantity
			}
		}
	}

	var result []EventUsage
	for _, e := range events {
		u, ok := byEvent[e.ID]
		if !ok || u.allocated == 0 {
			continue
		}
		result = append(result, EventUsage{
			EventID:     e.ID,
			Name:        e.Name,
			Type:        e.Type,
			Date:        e.Date,
			ItemCount:   u.items,
			Allocated:   u.allocated,
			Capacity:    u.capacity,
			Utilization: Percent(u.allocated, u.capacity),
			Revenue:     opts.EstimateRevenue(u.allocated),
		})
	}
	return result
}

// SlotUtilization returns the used share of an event's guest slots.
func SlotUtilization(e domain.Event) int {
	return Percent(e.UsedSlots, e.TotalSlots)
}
