package stats

import (
	"github.com/shopspring/decimal"

	"evplan/internal/domain"
)

// InventoryKPIs are the headline figures of the vendor inventory dashboard.
type InventoryKPIs struct {
	ItemCount         int             `json:"itemCount"`
	TotalQuantity     int             `json:"totalQuantity"`
	Allocated         int             `json:"allocated"`
	Available         int             `json:"available"`
	Utilization       int             `json:"utilization"`
	MedianUtilization float64         `json:"medianUtilization"`
	ActiveEvents      int             `json:"activeEvents"`
	LowCapacity       int             `json:"lowCapacity"`
	Overallocated     int             `json:"overallocated"`
	EstimatedRevenue  decimal.Decimal `json:"estimatedRevenue"`
}

// ComputeKPIs derives the global figures for a (possibly pre-filtered) item list.
//
// ActiveEvents counts distinct events with at least one positive allocation. When events is
// non-empty, only allocations against events in that list are counted.
func ComputeKPIs(items []domain.InventoryItem, events []domain.Event, opts Options) InventoryKPIs {
	known := make(map[string]bool, len(events))
	for _, e := range events {
		known[e.ID] = true
	}

	k := InventoryKPIs{ItemCount: len(items)}
	active := make(map[string]bool)
	utilizations := make([]int, 0, len(items))

	for _, item := range items {
		allocated := Allocated(item)
		k.TotalQuantity += item.TotalQuantity
		k.Allocated += allocated
		utilizations = append(utilizations, Percent(allocated, item.TotalQuantity))

		if IsLowCapacity(item, opts.LowCapacityRatio) {
			k.LowCapacity++
		}
		if allocated > item.TotalQuantity {
			k.Overallocated++
		}

		for _, a := range item.Allocations {
			if a.Quantity <= 0 {
				continue
			}
			if len(known) > 0 && !known[a.EventID] {
				continue
			}
			active[a.EventID] = true
		}
	}

	k.Available = k.TotalQuantity - k.Allocated
	k.Utilization = Percent(k.Allocated, k.TotalQuantity)
	k.MedianUtilization = CalculateMedianDiscrete(utilizations)
	k.ActiveEvents = len(active)
	k.EstimatedRevenue = opts.EstimateRevenue(k.Allocated)
	return k
}
