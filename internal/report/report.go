package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"

	"evplan/internal/datastore"
	"evplan/internal/stats"
)

//go:embed templates/dashboard.html templates/dashboard.js
var templateFS embed.FS

// Dashboard is everything the HTML report renders.
type Dashboard struct {
	GeneratedAt   time.Time                `json:"generatedAt"`
	Range         string                   `json:"range"`
	KPIs          stats.InventoryKPIs      `json:"kpis"`
	Categories    []stats.CategoryStat     `json:"categories"`
	Items         []stats.ItemStats        `json:"items"`
	Events        []stats.EventUsage       `json:"events"`
	Heatmap       stats.Heatmap            `json:"heatmap"`
	Trend         []stats.TrendPoint       `json:"trend"`
	Payments      stats.PaymentSummary     `json:"payments"`
	PaymentGroups []stats.EventPayments    `json:"paymentGroups"`
	Countdowns    []stats.PaymentCountdown `json:"countdowns"`
}

// Collect runs every aggregation over the current dataset. rangeToken limits the payment
// figures; an unknown token keeps all milestones.
func Collect(src datastore.Source, opts stats.Options, rangeToken string, now time.Time) Dashboard {
	items := src.Items()
	events := src.Events()
	payments := stats.FilterByDateRange(src.Payments(), rangeToken, now)

	d := Dashboard{
		GeneratedAt:   now,
		Range:         rangeToken,
		KPIs:          stats.ComputeKPIs(items, events, opts),
		Categories:    stats.CategoryStats(items, stats.FilterAll),
		Items:         stats.DeriveItems(items, opts),
		Events:        stats.EventPerformance(items, events, opts),
		Heatmap:       stats.AllocationHeatmap(items, events),
		Payments:      stats.SummarizePayments(payments),
		PaymentGroups: stats.GroupByEvent(payments),
	}

	if first, last, ok := stats.EventSpan(events); ok {
		window := stats.NewAnalysisWindow(first, last, stats.BucketMonth)
		d.Trend = stats.UtilizationTrend(items, events, window, now)
	}

	for _, p := range payments {
		d.Countdowns = append(d.Countdowns, stats.PaymentUrgency(p, now))
	}
	return d
}

type templateData struct {
	Dashboard
	DataJSON  template.JS
	Script    template.JS
	Generated string
}

// Render produces a self-contained HTML page. The inline script is minified before embedding.
func Render(d Dashboard) ([]byte, error) {
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dashboard data: %w", err)
	}

	script, err := minifiedScript()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"level": func(l int) string { return fmt.Sprintf("lvl-%d", l) },
		"title": func(s string) string { return strings.ReplaceAll(s, "_", " ") },
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, templateData{
		Dashboard: d,
		DataJSON:  template.JS(jsonData),
		Script:    template.JS(script),
		Generated: d.GeneratedAt.Format("2006-01-02 15:04"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func minifiedScript() (string, error) {
	src, err := templateFS.ReadFile("templates/dashboard.js")
	if err != nil {
		return "", fmt.Errorf("failed to read dashboard script: %w", err)
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("failed to minify dashboard script: %s", result.Errors[0].Text)
	}
	return string(result.Code), nil
}

// Write renders d into dir and returns the file path.
func Write(d Dashboard, dir string) (string, error) {
	page, err := Render(d)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("evplan-report-%s.html", d.GeneratedAt.Format("20060102-150405")))
	if err := os.WriteFile(path, page, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	log.Info().Str("path", path).Int("bytes", len(page)).Msg("Dashboard report written")
	return path, nil
}
