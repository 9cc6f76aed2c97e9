package mcp

import (
	"context"
	"fmt"
	"strings"

	"evplan/internal/domain"
	"evplan/internal/stats"
	"evplan/internal/visuals"
)

func (s *Server) handleInventoryOverview(_ context.Context, in inventoryInput) (any, error) {
	filter := stats.InventoryFilter(in.Query, in.Category, in.Status)
	rows := stats.Search(stats.DeriveItems(s.store().Items(), s.opts), filter)

	items := make([]domain.InventoryItem, len(rows))
	for i, r := range rows {
		items[i] = r.Item
	}
	kpis := stats.ComputeKPIs(items, s.store().Events(), s.opts)

	var warnings []string
	warnings = append(warnings, unknownFilter("category", in.Category, filter.Type != "")...)
	warnings = append(warnings, unknownFilter("status", in.Status, filter.Status != "")...)
	for _, r := range rows {
		if r.Status == domain.ItemOverallocated {
			warnings = append(warnings, fmt.Sprintf("%s is over-allocated by %d units", r.Item.Name, -r.Available))
		}
	}

	var guidance []string
	if kpis.LowCapacity > 0 {
		guidance = append(guidance, "Call 'inventory_by_category' to see which categories are running low before committing more units.")
	}

	res := map[string]any{
		"kpis":  kpis,
		"items": rows,
	}
	return WrapResponse(res, map[string]any{"filter": filter, "matched": len(rows)}, warnings, guidance), nil
}

func (s *Server) handleCategoryStats(_ context.Context, in categoryInput) (any, error) {
	category, ok := domain.ParseCategory(in.Category)
	categories := stats.CategoryStats(s.store().Items(), category)

	env := WrapResponse(categories, nil, unknownFilter("category", in.Category, ok), nil)
	return s.withChart(env, "categories", visuals.GenerateCategoryChart(categories)), nil
}

func (s *Server) handleEventPerformance(_ context.Context, _ struct{}) (any, error) {
	usage := stats.EventPerformance(s.store().Items(), s.store().Events(), s.opts)

	var warnings []string
	for _, u := range usage {
		if u.Utilization > 100 {
			warnings = append(warnings, fmt.Sprintf("%s holds more units (%d) than the capacity of its items (%d)", u.Name, u.Allocated, u.Capacity))
		}
	}

	env := WrapResponse(usage, map[string]any{"revenuePerUnit": s.opts.RevenuePerUnit}, warnings, nil)
	return s.withChart(env, "events", visuals.GenerateEventUsageChart(usage)), nil
}

func (s *Server) handleUtilizationTrend(_ context.Context, in trendInput) (any, error) {
	events := s.store().Events()

	first, last, ok := stats.EventSpan(events)
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() {
		first = start
	}
	if !end.IsZero() {
		last = end
	}
	if !ok && (start.IsZero() || end.IsZero()) {
		return WrapResponse([]stats.TrendPoint{}, nil, []string{"No dated events found; provide start_date and end_date"}, nil), nil
	}
	if last.Before(first) {
		return nil, fmt.Errorf("end_date %s is before start_date %s", last.Format("2006-01-02"), first.Format("2006-01-02"))
	}

	bucket := strings.ToLower(in.Bucket)
	window := stats.NewAnalysisWindow(first, last, bucket)
	points := stats.UtilizationTrend(s.store().Items(), events, window, s.now())

	env := WrapResponse(points, map[string]any{"window": window}, nil, nil)
	return s.withChart(env, "trend", visuals.GenerateUtilizationTrendChart(points, s.opts.LowCapacityRatio)), nil
}

func (s *Server) handleAllocationHeatmap(_ context.Context, in categoryInput) (any, error) {
	category, ok := domain.ParseCategory(in.Category)
	items := stats.FilterByCategory(s.store().Items(), category)
	return WrapResponse(stats.AllocationHeatmap(items, s.store().Events()), nil, unknownFilter("category", in.Category, ok), nil), nil
}

func (s *Server) handleAllocate(ctx context.Context, in allocateInput) (any, error) {
	item, err := s.provider.Allocate(ctx, in.ItemID, in.EventID, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("allocation of %d x %s to %s rejected: %w", in.Quantity, in.ItemID, in.EventID, err)
	}

	derived := stats.DeriveItem(item, s.opts)
	var guidance []string
	if derived.Status == domain.ItemLowCapacity || derived.Status == domain.ItemFullyAllocated {
		guidance = append(guidance, fmt.Sprintf("%s is now %s with %d units left.", item.Name, strings.ReplaceAll(string(derived.Status), "_", " "), derived.Available))
	}
	return WrapResponse(derived, map[string]any{"eventId": in.EventID, "quantity": in.Quantity}, nil, guidance), nil
}
