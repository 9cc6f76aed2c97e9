package stats

import "evplan/internal/domain"

// HeatmapLevel buckets a utilization percentage into one of six intensity levels:
// 0 -> 0, (0,20) -> 1, [20,40) -> 2, [40,60) -> 3, [60,80) -> 4, [80,100] -> 5.
// Negative input maps to 0 and over-allocation above 100 maps to 5.
func HeatmapLevel(pct float64) int {
	switch {
	case pct <= 0:
		return 0
	case pct < 20:
		return 1
	case pct < 40:
		return 2
	case pct < 60:
		return 3
	case pct < 80:
		return 4
	default:
		return 5
	}
}

// HeatmapCell is one item/event intersection.
type HeatmapCell struct {
	Quantity    int `json:"quantity"`
	Utilization int `json:"utilization"` // share of the item's total quantity
	Level       int `json:"level"`
}

type HeatmapAxis struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Heatmap is an item x event matrix. Cells[i][j] belongs to Rows[i] and Columns[j].
type Heatmap struct {
	Rows    []HeatmapAxis   `json:"rows"`
	Columns []HeatmapAxis   `json:"columns"`
	Cells   [][]HeatmapCell `json:"cells"`
}

// AllocationHeatmap lays out how much of each item every event holds.
func AllocationHeatmap(items []domain.InventoryItem, events []domain.Event) Heatmap {
	h := Heatmap{
		Rows:    make([]HeatmapAxis, 0, len(items)),
		Columns: make([]HeatmapAxis, 0, len(events)),
		Cells:   make([][]HeatmapCell, 0, len(items)),
	}

	col := make(map[string]int, len(events))
	for j, e := range events {
		col[e.ID] = j
		h.Columns = append(h.Columns, HeatmapAxis{ID: e.ID, Name: e.Name})
	}

	for _, item := range items {
		h.Rows = append(h.Rows, HeatmapAxis{ID: item.ID, Name: item.Name})
		row := make([]HeatmapCell, len(events))
		for _, a := range item.Allocations {
			if j, ok := col[a.EventID]; ok {
				row[j].Quantity += a.Quantity
			}
		}
		for j := range row {
			row[j].Utilization = Percent(row[j].Quantity, item.TotalQuantity)
			row[j].Level = HeatmapLevel(float64(row[j].Utilization))
		}
		h.Cells = append(h.Cells, row)
	}
	return h
}
