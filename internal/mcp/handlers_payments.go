package mcp

import (
	"context"
	"fmt"
	"strings"

	"evplan/internal/domain"
	"evplan/internal/stats"
	"evplan/internal/visuals"
)

// filteredPayments applies the date range first and then the search filter.
func (s *Server) filteredPayments(in paymentInput) ([]domain.PaymentMilestone, map[string]any, []string) {
	rangeToken := in.Range
	if rangeToken == "" {
		rangeToken = s.cfg.DefaultRange
	}

	var warnings []string
	if _, ok := stats.ParseDateRange(rangeToken); !ok && rangeToken != "" && !strings.EqualFold(strings.TrimSpace(rangeToken), "all") {
		warnings = append(warnings, fmt.Sprintf("range %q is not recognised; showing all milestones", rangeToken))
	}

	filter := stats.PaymentFilter(in.Query, in.EventType, in.Status)
	warnings = append(warnings, unknownFilter("event_type", in.EventType, filter.Type != "")...)
	warnings = append(warnings, unknownFilter("status", in.Status, filter.Status != "")...)

	payments := stats.FilterByDateRange(s.store().Payments(), rangeToken, s.now())
	payments = stats.Search(payments, filter)

	ctx := map[string]any{"range": rangeToken, "filter": filter, "matched": len(payments)}
	return payments, ctx, warnings
}

func (s *Server) handlePaymentSummary(_ context.Context, in paymentInput) (any, error) {
	payments, ctx, warnings := s.filteredPayments(in)
	summary := stats.SummarizePayments(payments)

	var guidance []string
	if summary.Counts[domain.Overdue] > 0 {
		guidance = append(guidance, "Call 'payments_by_event' with status 'overdue' to see which clients are behind.")
	}

	env := WrapResponse(summary, ctx, warnings, guidance)
	return s.withChart(env, "payments", visuals.GeneratePaymentPie(summary)), nil
}

type eventPaymentsView struct {
	stats.EventPayments
	Countdowns []stats.PaymentCountdown `json:"countdowns"`
}

func (s *Server) handlePaymentsByEvent(_ context.Context, in paymentInput) (any, error) {
	payments, ctx, warnings := s.filteredPayments(in)
	now := s.now()

	groups := stats.GroupByEvent(payments)
	views := make([]eventPaymentsView, len(groups))
	for i, g := range groups {
		views[i].EventPayments = g
		for _, p := range g.Payments {
			views[i].Countdowns = append(views[i].Countdowns, stats.PaymentUrgency(p, now))
		}
	}
	return WrapResponse(views, ctx, warnings, nil), nil
}

func (s *Server) handleUpdatePaymentStatus(ctx context.Context, in paymentStatusInput) (any, error) {
	to, ok := domain.ParsePaymentStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("unknown payment status %q", in.Status)
	}

	updated, err := s.provider.UpdatePaymentStatus(ctx, in.PaymentID, to, s.now())
	if err != nil {
		return nil, fmt.Errorf("payment %s not updated: %w", in.PaymentID, err)
	}
	return WrapResponse(updated, nil, nil, nil), nil
}
