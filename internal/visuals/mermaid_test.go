package visuals

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"evplan/internal/domain"
	"evplan/internal/stats"
)

func TestGenerateUtilizationTrendChart(t *testing.T) {
	if got := GenerateUtilizationTrendChart(nil, 0.2); got != "" {
		t.Errorf("Expected empty chart for no points, got %q", got)
	}

	points := []stats.TrendPoint{
		{Label: "Mar 2026", Utilization: 45},
		{Label: "Apr 2026", Utilization: 130},
	}
	chart := GenerateUtilizationTrendChart(points, 0.2)

	for _, want := range []string{
		"x-axis [\"Mar 2026\", \"Apr 2026\"]",
		"y-axis \"Utilization (%)\" 0 --> 130",
		"bar [45, 130]",
		"line [80, 80]",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("Chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateUtilizationTrendChart_Subsamples(t *testing.T) {
	points := make([]stats.TrendPoint, 150)
	for i := range points {
		points[i].Label = "d"
	}
	chart := GenerateUtilizationTrendChart(points, 0.2)

	for _, line := range strings.Split(chart, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "bar [") {
			if n := strings.Count(line, ",") + 1; n > maxPoints {
				t.Errorf("Expected at most %d points, got %d", maxPoints, n)
			}
		}
	}
}

func TestGenerateCategoryChart(t *testing.T) {
	chart := GenerateCategoryChart([]stats.CategoryStat{
		{Category: domain.Furniture, TotalQuantity: 120, Allocated: 95},
		{Category: domain.AudioVisual, TotalQuantity: 10, Allocated: 12},
	})

	if !strings.Contains(chart, "bar [120, 10]") || !strings.Contains(chart, "bar [95, 12]") {
		t.Errorf("Unexpected category chart:\n%s", chart)
	}
	if !strings.Contains(chart, "0 --> 144") {
		t.Errorf("Expected 20%% headroom on the y-axis:\n%s", chart)
	}
}

func TestGenerateEventUsageChart_QuotesNames(t *testing.T) {
	chart := GenerateEventUsageChart([]stats.EventUsage{{Name: `The "Big" Day`, Allocated: 9}})
	if !strings.Contains(chart, `"The 'Big' Day"`) {
		t.Errorf("Expected inner quotes to be replaced:\n%s", chart)
	}
}

func TestGeneratePaymentPie(t *testing.T) {
	if got := GeneratePaymentPie(stats.SummarizePayments(nil)); got != "" {
		t.Errorf("Expected empty pie for no payments, got %q", got)
	}

	summary := stats.SummarizePayments([]domain.PaymentMilestone{
		{Amount: decimal.NewFromInt(2500), Status: domain.Released},
		{Amount: decimal.NewFromInt(2500), Status: domain.Pending},
	})
	chart := GeneratePaymentPie(summary)

	if !strings.Contains(chart, "\"Released\" : 2500.00") || !strings.Contains(chart, "\"Pending\" : 2500.00") {
		t.Errorf("Unexpected pie:\n%s", chart)
	}
	if strings.Contains(chart, "Eligible") || strings.Contains(chart, "Overdue") {
		t.Errorf("Zero slices should be omitted:\n%s", chart)
	}
}
