package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"evplan/internal/domain"
	"evplan/internal/stats"
)

type inventoryInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against item name, id and vendor"`
	Category string `json:"category,omitempty" jsonschema:"Category filter (furniture, audio_visual, lighting, decor, tableware, staging). Unknown values or ALL disable the filter"`
	Status   string `json:"status,omitempty" jsonschema:"Item status filter (available, low_capacity, fully_allocated, overallocated). Unknown values or ALL disable the filter"`
}

type categoryInput struct {
	Category string `json:"category,omitempty" jsonschema:"Optional single category; unknown values or ALL return every category"`
}

type trendInput struct {
	Bucket    string `json:"bucket,omitempty" jsonschema:"Bucket size for the trend series"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Optional start date (YYYY-MM-DD). Default: earliest event"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Optional end date (YYYY-MM-DD). Default: latest event"`
}

type allocateInput struct {
	ItemID   string `json:"item_id" jsonschema:"Inventory item id"`
	EventID  string `json:"event_id" jsonschema:"Event id; active events are allocatable too"`
	Quantity int    `json:"quantity" jsonschema:"Units to commit; must be positive and not exceed the available quantity"`
}

type paymentInput struct {
	Range     string `json:"range,omitempty" jsonschema:"Keep milestones due on or after now minus this interval, e.g. '30 days', '3 months', '90d'. 'all' or unknown keeps everything"`
	Query     string `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against event name, milestone, client name and invoice reference"`
	EventType string `json:"event_type,omitempty" jsonschema:"Event type filter; unknown values or ALL disable the filter"`
	Status    string `json:"status,omitempty" jsonschema:"Payment status filter (released, eligible, pending, overdue); unknown values or ALL disable the filter"`
}

type paymentStatusInput struct {
	PaymentID string `json:"payment_id" jsonschema:"Payment milestone id"`
	Status    string `json:"status" jsonschema:"Target status"`
}

type eventSearchInput struct {
	Query     string `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against event name, code and client name"`
	EventType string `json:"event_type,omitempty" jsonschema:"Event type filter (wedding, conference, meeting, incentive, exhibition); unknown values or ALL disable the filter"`
	Status    string `json:"status,omitempty" jsonschema:"Event status filter; statuses that do not apply to the list searched mean ALL"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "inventory_overview",
		Description: "Headline inventory KPIs (units allocated/available, utilization, active events, low capacity and over-allocated counts, estimated revenue) plus the per-item breakdown, optionally filtered by search text, category and item status.",
		InputSchema: inputSchema[inventoryInput](nil),
	}, handle(s, "inventory_overview", s.handleInventoryOverview))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "inventory_by_category",
		Description: "Per-category item count, total quantity, allocated, available and utilization percentage in a fixed category order.",
		InputSchema: inputSchema[categoryInput](nil),
	}, handle(s, "inventory_by_category", s.handleCategoryStats))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "event_performance",
		Description: "Per-event allocated units, capacity of the items allocated to it, utilization and estimated revenue. Events without allocations are omitted.",
		InputSchema: inputSchema[struct{}](nil),
	}, handle(s, "event_performance", s.handleEventPerformance))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "utilization_trend",
		Description: "Bucketed time series of units allocated to events dated in each bucket against the whole inventory pool. Guidance: the bucket containing today is flagged as partial.",
		InputSchema: inputSchema[trendInput](map[string][]any{
			"bucket": {stats.BucketDay, stats.BucketWeek, stats.BucketMonth},
		}),
	}, handle(s, "utilization_trend", s.handleUtilizationTrend))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "allocation_heatmap",
		Description: "Item x event matrix of allocated quantity with heatmap levels 0-5 relative to each item's total quantity.",
		InputSchema: inputSchema[categoryInput](nil),
	}, handle(s, "allocation_heatmap", s.handleAllocationHeatmap))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "allocate_inventory",
		Description: "Commit units of an inventory item to an event. Rejected when the quantity is not positive or exceeds the available quantity; a rejected request changes nothing.",
		InputSchema: inputSchema[allocateInput](nil),
	}, handle(s, "allocate_inventory", s.handleAllocate))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "payment_summary",
		Description: "Settlement totals and percentage shares (released, eligible, pending incl. overdue) over the milestones matching the filters.",
		InputSchema: inputSchema[paymentInput](nil),
	}, handle(s, "payment_summary", s.handlePaymentSummary))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "payments_by_event",
		Description: "Milestones grouped by event with a per-event settlement summary and a due-date countdown per milestone.",
		InputSchema: inputSchema[paymentInput](nil),
	}, handle(s, "payments_by_event", s.handlePaymentsByEvent))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "update_payment_status",
		Description: "Move a payment milestone along its lifecycle: pending -> eligible or overdue, eligible or overdue -> released. Other moves are rejected.",
		InputSchema: inputSchema[paymentStatusInput](map[string][]any{
			"status": enumValues(domain.AllPaymentStatuses()),
		}),
	}, handle(s, "update_payment_status", s.handleUpdatePaymentStatus))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_events",
		Description: "Search active events (planning, confirmed, in progress) by text, type and status.",
		InputSchema: inputSchema[eventSearchInput](nil),
	}, handle(s, "search_events", s.handleSearchEvents))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_archive",
		Description: "Search completed and cancelled events by text, type and status.",
		InputSchema: inputSchema[eventSearchInput](nil),
	}, handle(s, "search_archive", s.handleSearchArchive))
}

func enumValues[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
