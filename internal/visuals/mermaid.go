package visuals

import (
	"fmt"
	"math"
	"strings"

	"evplan/internal/stats"
)

// maxPoints is roughly where Mermaid's xychart layout starts overlapping axis labels.
const maxPoints = 60

// GenerateUtilizationTrendChart creates a Mermaid xychart-beta with bucketed utilization as bars
// and the low capacity threshold as a reference line.
func GenerateUtilizationTrendChart(points []stats.TrendPoint, lowCapacityRatio float64) string {
	if len(points) == 0 {
		return ""
	}

	threshold := fmt.Sprintf("%.0f", (1-lowCapacityRatio)*100)

	subsampleRate := 1
	if len(points) > maxPoints {
		subsampleRate = int(math.Ceil(float64(len(points)) / maxPoints))
	}

	var labels, values, limits []string
	maxY := 100
	for i, p := range points {
		if p.Utilization > maxY {
			maxY = p.Utilization
		}
		if i%subsampleRate != 0 && i != len(points)-1 {
			continue
		}
		labels = append(labels, quote(p.Label))
		values = append(values, fmt.Sprintf("%d", p.Utilization))
		limits = append(limits, threshold)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Inventory Utilization Trend\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Utilization (%%)\" 0 --> %d\n", maxY))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(limits, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCategoryChart creates a Mermaid bar chart of allocated units per category.
func GenerateCategoryChart(categories []stats.CategoryStat) string {
	if len(categories) == 0 {
		return ""
	}

	var labels, allocated, totals []string
	maxVal := 0
	for _, c := range categories {
		labels = append(labels, quote(string(c.Category)))
		allocated = append(allocated, fmt.Sprintf("%d", c.Allocated))
		totals = append(totals, fmt.Sprintf("%d", c.TotalQuantity))
		if c.TotalQuantity > maxVal {
			maxVal = c.TotalQuantity
		}
		if c.Allocated > maxVal {
			maxVal = c.Allocated
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Allocation by Category\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Units\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(totals, ", ")))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(allocated, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateEventUsageChart creates a Mermaid bar chart of allocated units for the busiest events.
func GenerateEventUsageChart(usage []stats.EventUsage) string {
	if len(usage) == 0 {
		return ""
	}

	limit := len(usage)
	if limit > 20 {
		limit = 20
	}

	var labels, values []string
	maxVal := 0
	for _, u := range usage[:limit] {
		labels = append(labels, quote(u.Name))
		values = append(values, fmt.Sprintf("%d", u.Allocated))
		if u.Allocated > maxVal {
			maxVal = u.Allocated
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Units Allocated per Event\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Units\" 0 --> %d\n", int(math.Ceil(float64(maxVal)*1.1))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GeneratePaymentPie creates a Mermaid pie of settlement amounts by status.
func GeneratePaymentPie(summary stats.PaymentSummary) string {
	if summary.TotalExpected.IsZero() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Payment Settlement\n")
	slices := []struct {
		label  string
		amount string
		zero   bool
	}{
		{"Released", summary.Released.StringFixed(2), summary.Released.IsZero()},
		{"Eligible", summary.Eligible.StringFixed(2), summary.Eligible.IsZero()},
		{"Pending", summary.Pending.StringFixed(2), summary.Pending.IsZero()},
		{"Overdue", summary.Overdue.StringFixed(2), summary.Overdue.IsZero()},
	}
	for _, s := range slices {
		if s.zero {
			continue
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %s\n", s.label, s.amount))
	}
	sb.WriteString("```")
	return sb.String()
}

// Mermaid labels break on double quotes.
func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "'") + "\""
}
