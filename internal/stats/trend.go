package stats

import (
	"time"

	"evplan/internal/domain"
)

// TrendPoint is the inventory commitment of all events dated within one bucket.
type TrendPoint struct {
	Date         time.Time `json:"date"`
	Label        string    `json:"label"`
	Events       int       `json:"events"`
	Allocated    int       `json:"allocated"`
	Capacity     int       `json:"capacity"`
	Utilization  int       `json:"utilization"`
	HeatmapLevel int       `json:"heatmapLevel"`
	Partial      bool      `json:"partial,omitempty"` // bucket still running at the reference time
}

// UtilizationTrend buckets events by date and, per bucket, relates the units allocated to those
// events to the whole inventory pool. Buckets without events are emitted with zero values so the
// series stays contiguous. Events outside the window are ignored. now only marks the running bucket.
func UtilizationTrend(items []domain.InventoryItem, events []domain.Event, window AnalysisWindow, now time.Time) []TrendPoint {
	buckets := window.Subdivide()
	points := make([]TrendPoint, len(buckets))

	pool := 0
	for _, item := range items {
		pool += item.TotalQuantity
	}

	for i, start := range buckets {
		points[i] = TrendPoint{
			Date:     start,
			Label:    window.GenerateLabel(start),
			Capacity: pool,
			Partial:  window.IsPartial(start, now),
		}
	}

	bucketOf := make(map[string]int, len(events))
	for _, e := range events {
		idx := window.FindBucketIndex(e.Date)
		if idx < 0 || idx >= len(points) {
			continue
		}
		bucketOf[e.ID] = idx
		points[idx].Events++
	}

	for _, item := range items {
		for _, a := range item.Allocations {
			if idx, ok := bucketOf[a.EventID]; ok {
				points[idx].Allocated += a.Quantity
			}
		}
	}

	for i := range points {
		points[i].Utilization = Percent(points[i].Allocated, points[i].Capacity)
		points[i].HeatmapLevel = HeatmapLevel(float64(points[i].Utilization))
	}
	return points
}

// EventSpan returns the earliest and latest dated event. ok is false when no event carries a date.
func EventSpan(events []domain.Event) (first, last time.Time, ok bool) {
	for _, e := range events {
		if e.Date.IsZero() {
			continue
		}
		if !ok || e.Date.Before(first) {
			first = e.Date
		}
		if !ok || e.Date.After(last) {
			last = e.Date
		}
		ok = true
	}
	return first, last, ok
}
