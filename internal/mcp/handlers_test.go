package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"evplan/internal/config"
	"evplan/internal/datastore"
	"evplan/internal/domain"
	"evplan/internal/stats"
)

var testNow = time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := datastore.NewStore()
	store.Replace(datastore.Snapshot{
		Items: []domain.InventoryItem{
			{ID: "CH", Name: "Chiavari Chair", Category: domain.Furniture, Vendor: "Oak & Co", TotalQuantity: 100,
				Allocations: []domain.Allocation{{EventID: "E1", ItemID: "CH", Quantity: 60}}},
			{ID: "SP", Name: "Line Array Speaker", Category: domain.AudioVisual, TotalQuantity: 10,
				Allocations: []domain.Allocation{{EventID: "E2", ItemID: "SP", Quantity: 12}}},
			{ID: "UP", Name: "Uplight", Category: domain.Lighting, TotalQuantity: 20},
		},
		Events: []domain.Event{
			{ID: "E1", Name: "Spring Gala", Type: domain.Wedding, Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
			{ID: "E2", Name: "Tech Summit", Type: domain.Conference, Date: time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC)},
		},
		ActiveEvents: []domain.ActiveEvent{
			{Event: domain.Event{ID: "A1", Name: "Harbor Wedding", Type: domain.Wedding, TotalSlots: 10, UsedSlots: 4,
				Date: time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)}, Code: "WED-001", ClientName: "Rivera", Status: domain.Confirmed,
				Revenue: decimal.NewFromInt(18000)},
			{Event: domain.Event{ID: "A2", Name: "Sales Kickoff", Type: domain.Conference}, Code: "CON-002", ClientName: "Acme",
				Status: domain.Planning},
		},
		ArchivedEvents: []domain.ArchivedEvent{
			{Event: domain.Event{ID: "X1", Name: "Winter Ball", Type: domain.Wedding}, Code: "WED-900", Status: domain.Completed, Rating: 4.5},
			{Event: domain.Event{ID: "X2", Name: "Expo Cancelled", Type: domain.Exhibition}, Code: "EXH-901", Status: domain.Cancelled},
		},
		Payments: []domain.PaymentMilestone{
			{ID: "P1", EventID: "E1", EventName: "Spring Gala", Milestone: "Deposit", Amount: decimal.NewFromInt(2500),
				DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Status: domain.Released, EventType: domain.Wedding},
			{ID: "P2", EventID: "E1", EventName: "Spring Gala", Milestone: "Final", Amount: decimal.NewFromInt(2500),
				DueDate: time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC), Status: domain.Pending, EventType: domain.Wedding},
			{ID: "P3", EventID: "E2", EventName: "Tech Summit", Milestone: "Deposit", Amount: decimal.NewFromInt(5000),
				DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Status: domain.Overdue, EventType: domain.Conference},
		},
	})

	cfg := &config.AppConfig{
		RevenuePerUnit:      decimal.NewFromInt(stats.DefaultRevenuePerUnit),
		LowCapacityRatio:    stats.DefaultLowCapacityRatio,
		DefaultRange:        "all",
		EnableMermaidCharts: true,
	}
	s := NewServer(cfg, datastore.NewProvider(store, t.TempDir()), "test")
	s.now = func() time.Time { return testNow }
	return s
}

func envelope(t *testing.T) func(res any, err error) ResponseEnvelope {
	return func(res any, err error) ResponseEnvelope {
		t.Helper()
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		env, ok := res.(ResponseEnvelope)
		if !ok {
			t.Fatalf("Expected ResponseEnvelope, got %T", res)
		}
		return env
	}
}

func TestHandleInventoryOverview(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		in           inventoryInput
		wantItems    int
		wantWarnings int
	}{
		{"All", inventoryInput{}, 3, 1}, // SP is over-allocated
		{"ByCategory", inventoryInput{Category: "furniture"}, 1, 0},
		{"UnknownCategoryMeansAll", inventoryInput{Category: "inflatables"}, 3, 2},
		{"ByStatus", inventoryInput{Status: "overallocated"}, 1, 1},
		{"ByVendor", inventoryInput{Query: "oak"}, 1, 0},
		{"NoMatch", inventoryInput{Query: "piano"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := envelope(t)(s.handleInventoryOverview(ctx, tt.in))
			data := env.Data.(map[string]any)
			rows := data["items"].([]stats.ItemStats)
			if len(rows) != tt.wantItems {
				t.Errorf("Expected %d items, got %d", tt.wantItems, len(rows))
			}
			if len(env.Warnings) != tt.wantWarnings {
				t.Errorf("Expected %d warnings, got %v", tt.wantWarnings, env.Warnings)
			}
		})
	}
}

func TestHandleInventoryOverview_KPIsFollowFilter(t *testing.T) {
	s := newTestServer(t)
	env := envelope(t)(s.handleInventoryOverview(context.Background(), inventoryInput{Category: "furniture"}))

	kpis := env.Data.(map[string]any)["kpis"].(stats.InventoryKPIs)
	if kpis.ItemCount != 1 || kpis.Allocated != 60 || kpis.Utilization != 60 || kpis.ActiveEvents != 1 {
		t.Errorf("Unexpected KPIs: %+v", kpis)
	}
	if !kpis.EstimatedRevenue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected revenue 3000, got %s", kpis.EstimatedRevenue)
	}
}

func TestHandleCategoryStats(t *testing.T) {
	s := newTestServer(t)
	env := envelope(t)(s.handleCategoryStats(context.Background(), categoryInput{}))

	cats := env.Data.([]stats.CategoryStat)
	if len(cats) != 3 || cats[0].Category != domain.Furniture || cats[1].Category != domain.AudioVisual || cats[2].Category != domain.Lighting {
		t.Errorf("Unexpected category order: %+v", cats)
	}
	if !strings.Contains(env.Charts["categories"], "xychart-beta") {
		t.Errorf("Expected a category chart, got %v", env.Charts)
	}
}

func TestHandleCategoryStats_ChartsDisabled(t *testing.T) {
	s := newTestServer(t)
	s.cfg.EnableMermaidCharts = false

	env := envelope(t)(s.handleCategoryStats(context.Background(), categoryInput{Category: "lighting"}))
	if env.Charts != nil {
		t.Errorf("Charts must be omitted when disabled")
	}
	if cats := env.Data.([]stats.CategoryStat); len(cats) != 1 || cats[0].Utilization != 0 {
		t.Errorf("Unexpected lighting stats: %+v", cats)
	}
}

func TestHandleEventPerformance(t *testing.T) {
	s := newTestServer(t)
	env := envelope(t)(s.handleEventPerformance(context.Background(), struct{}{}))

	usage := env.Data.([]stats.EventUsage)
	if len(usage) != 2 || usage[0].EventID != "E1" || usage[1].Utilization != 120 {
		t.Errorf("Unexpected usage: %+v", usage)
	}
	if len(env.Warnings) != 1 || !strings.Contains(env.Warnings[0], "Tech Summit") {
		t.Errorf("Expected over-capacity warning for Tech Summit, got %v", env.Warnings)
	}
}

func TestHandleUtilizationTrend(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	env := envelope(t)(s.handleUtilizationTrend(ctx, trendInput{}))
	points := env.Data.([]stats.TrendPoint)
	// E1, E2 and the dated active event A1 span March to June.
	if len(points) != 4 || points[0].Allocated != 60 || !points[0].Partial {
		t.Errorf("Unexpected monthly trend: %+v", points)
	}

	env = envelope(t)(s.handleUtilizationTrend(ctx, trendInput{Bucket: "week", StartDate: "2026-03-09", EndDate: "2026-03-22"}))
	if points := env.Data.([]stats.TrendPoint); len(points) != 2 || points[0].Events != 1 {
		t.Errorf("Unexpected weekly trend: %+v", points)
	}

	if _, err := s.handleUtilizationTrend(ctx, trendInput{StartDate: "22/03/2026"}); err == nil {
		t.Error("Expected an error for a malformed date")
	}
	if _, err := s.handleUtilizationTrend(ctx, trendInput{StartDate: "2026-05-01", EndDate: "2026-04-01"}); err == nil {
		t.Error("Expected an error for an inverted window")
	}
}

func TestHandleAllocationHeatmap(t *testing.T) {
	s := newTestServer(t)
	env := envelope(t)(s.handleAllocationHeatmap(context.Background(), categoryInput{Category: "furniture"}))

	h := env.Data.(stats.Heatmap)
	if len(h.Rows) != 1 || len(h.Columns) != 4 {
		t.Fatalf("Unexpected heatmap shape: %d x %d", len(h.Rows), len(h.Columns))
	}
	if cell := h.Cells[0][0]; cell.Quantity != 60 || cell.Level != 4 {
		t.Errorf("Unexpected cell: %+v", cell)
	}
}

func TestHandleAllocate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	env := envelope(t)(s.handleAllocate(ctx, allocateInput{ItemID: "CH", EventID: "A1", Quantity: 30}))
	derived := env.Data.(stats.ItemStats)
	if derived.Available != 10 || derived.Status != domain.ItemLowCapacity {
		t.Errorf("Unexpected item after allocation: %+v", derived)
	}
	if len(env.Guidance) != 1 {
		t.Errorf("Expected low capacity guidance, got %v", env.Guidance)
	}

	_, err := s.handleAllocate(ctx, allocateInput{ItemID: "CH", EventID: "A1", Quantity: 20})
	if !errors.Is(err, stats.ErrInsufficientCapacity) {
		t.Errorf("Expected ErrInsufficientCapacity, got %v", err)
	}
	_, err = s.handleAllocate(ctx, allocateInput{ItemID: "CH", EventID: "NOPE", Quantity: 1})
	if !errors.Is(err, datastore.ErrUnknownEvent) {
		t.Errorf("Expected ErrUnknownEvent, got %v", err)
	}
}

func TestHandlePaymentSummary(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	env := envelope(t)(s.handlePaymentSummary(ctx, paymentInput{}))
	summary := env.Data.(stats.PaymentSummary)
	if summary.ReleasedPct != 25 || summary.PendingPct != 75 || summary.OverduePct != 50 {
		t.Errorf("Unexpected shares: %+v", summary)
	}
	if len(env.Guidance) != 1 || env.Charts["payments"] == "" {
		t.Errorf("Expected overdue guidance and a pie chart, got %+v", env)
	}

	env = envelope(t)(s.handlePaymentSummary(ctx, paymentInput{Range: "30 days"}))
	if summary := env.Data.(stats.PaymentSummary); !summary.TotalExpected.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("Expected the deposit due Feb 1 to be excluded, got %s", summary.TotalExpected)
	}

	env = envelope(t)(s.handlePaymentSummary(ctx, paymentInput{Range: "fortnight"}))
	if len(env.Warnings) != 1 {
		t.Errorf("Expected a warning for an unknown range, got %v", env.Warnings)
	}

	env = envelope(t)(s.handlePaymentSummary(ctx, paymentInput{EventType: "conference"}))
	if summary := env.Data.(stats.PaymentSummary); summary.Counts[domain.Overdue] != 1 || summary.PendingPct != 100 {
		t.Errorf("Unexpected conference summary: %+v", summary)
	}
}

func TestHandlePaymentsByEvent(t *testing.T) {
	s := newTestServer(t)
	env := envelope(t)(s.handlePaymentsByEvent(context.Background(), paymentInput{}))

	views := env.Data.([]eventPaymentsView)
	if len(views) != 2 || views[0].EventID != "E1" || len(views[0].Payments) != 2 {
		t.Fatalf("Unexpected grouping: %+v", views)
	}
	final := views[0].Countdowns[1]
	if final.DaysLeft != 3 || final.Urgency != stats.UrgencyDueSoon {
		t.Errorf("Unexpected countdown for final milestone: %+v", final)
	}
	if views[1].Countdowns[0].Urgency != stats.UrgencyOverdue {
		t.Errorf("Expected overdue countdown, got %+v", views[1].Countdowns[0])
	}
}

func TestHandleUpdatePaymentStatus(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	env := envelope(t)(s.handleUpdatePaymentStatus(ctx, paymentStatusInput{PaymentID: "P3", Status: "released"}))
	updated := env.Data.(domain.PaymentMilestone)
	if updated.Status != domain.Released || updated.PaidDate == nil || !updated.PaidDate.Equal(testNow) {
		t.Errorf("Unexpected update: %+v", updated)
	}

	if _, err := s.handleUpdatePaymentStatus(ctx, paymentStatusInput{PaymentID: "P1", Status: "pending"}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
	if _, err := s.handleUpdatePaymentStatus(ctx, paymentStatusInput{PaymentID: "P2", Status: "paid"}); err == nil {
		t.Error("Expected an error for an unknown status")
	}
}

func TestHandleSearchEvents(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      eventSearchInput
		wantIDs []string
	}{
		{"All", eventSearchInput{}, []string{"A1", "A2"}},
		{"ByCode", eventSearchInput{Query: "wed-0"}, []string{"A1"}},
		{"ByClient", eventSearchInput{Query: "ACME"}, []string{"A2"}},
		{"ByStatus", eventSearchInput{Status: "planning"}, []string{"A2"}},
		{"ArchiveStatusMeansAll", eventSearchInput{Status: "completed"}, []string{"A1", "A2"}},
		{"TypeAndStatus", eventSearchInput{EventType: "wedding", Status: "planning"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := envelope(t)(s.handleSearchEvents(ctx, tt.in))
			views := env.Data.([]activeEventView)
			if len(views) != len(tt.wantIDs) {
				t.Fatalf("Expected %v, got %+v", tt.wantIDs, views)
			}
			for i, id := range tt.wantIDs {
				if views[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, views[i].ID)
				}
			}
		})
	}

	env := envelope(t)(s.handleSearchEvents(ctx, eventSearchInput{Query: "harbor"}))
	if v := env.Data.([]activeEventView)[0]; v.SlotUtilization != 40 || v.Revenue != "18000.00" {
		t.Errorf("Unexpected view: %+v", v)
	}
}

func TestHandleSearchArchive(t *testing.T) {
	s := newTestServer(t)
	env := envelope(t)(s.handleSearchArchive(context.Background(), eventSearchInput{Status: "cancelled"}))

	matched := env.Data.([]domain.ArchivedEvent)
	if len(matched) != 1 || matched[0].ID != "X2" {
		t.Errorf("Unexpected archive search: %+v", matched)
	}
}
