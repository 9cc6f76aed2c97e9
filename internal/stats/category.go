package stats

import "evplan/internal/domain"

// CategoryStat aggregates capacity across all items of one category.
type CategoryStat struct {
	Category      domain.Category `json:"category"`
	ItemCount     int             `json:"itemCount"`
	TotalQuantity int             `json:"totalQuantity"`
	Allocated     int             `json:"allocated"`
	Available     int             `json:"available"`
	Utilization   int             `json:"utilization"`
}

// CategoryStats groups items by category. When filter is a valid category only that group is
// returned; any other value means all categories.
//
// Output follows the fixed category order; categories outside the closed set (possible with
// loosely validated source data) follow in first-seen order.
func CategoryStats(items []domain.InventoryItem, filter domain.Category) []CategoryStat {
	groups := make(map[domain.Category]*CategoryStat)
	var unknown []domain.Category

	for _, item := range items {
		if filter.Valid() && item.Category != filter {
			continue
		}
		g, ok := groups[item.Category]
		if !ok {
			g = &CategoryStat{Category: item.Category}
			groups[item.Category] = g
			if !item.Category.Valid() {
				unknown = append(unknown, item.Category)
			}
		}
		g.ItemCount++
		g.TotalQuantity += item.TotalQuantity
		g.Allocated += Allocated(item)
	}

	order := append(domain.AllCategories(), unknown...)
	result := make([]CategoryStat, 0, len(groups))
	for _, c := range order {
		g, ok := groups[c]
		if !ok {
			continue
		}
		g.Available = g.TotalQuantity - g.Allocated
		g.Utilization = Percent(g.Allocated, g.TotalQuantity)
		result = append(result, *g)
	}
	return result
}

// FilterByCategory returns the items of one category, or all items for an unknown filter.
func FilterByCategory(items []domain.InventoryItem, filter domain.Category) []domain.InventoryItem {
	if !filter.Valid() {
		return items
	}
	var out []domain.InventoryItem
	for _, item := range items {
		if item.Category == filter {
			out = append(out, item)
		}
	}
	return out
}
