package engine

import (
	"context"
	"testing"
	"time"

	"evplan/internal/datastore"
	"evplan/internal/stats"
)

var genNow = time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{Scenario: "balanced", Items: 12, Events: 10, Seed: 42, Now: genNow}

	a := Generate(cfg)
	b := Generate(cfg)

	if len(a.Items) != 12 || len(a.Events) != 10 {
		t.Fatalf("Unexpected sizes: %d items, %d events", len(a.Items), len(a.Events))
	}
	for i := range a.Items {
		if a.Items[i].ID != b.Items[i].ID || stats.Allocated(a.Items[i]) != stats.Allocated(b.Items[i]) {
			t.Fatalf("Same seed produced different items at %d", i)
		}
	}
	if len(a.Payments) != len(b.Payments) || a.Payments[0].InvoiceRef != b.Payments[0].InvoiceRef {
		t.Errorf("Same seed produced different payments")
	}

	c := Generate(GeneratorConfig{Scenario: "balanced", Items: 12, Events: 10, Seed: 7, Now: genNow})
	if c.Items[0].ID == a.Items[0].ID {
		t.Errorf("Different seeds produced the same item ids")
	}
}

func TestGenerate_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		scenario      string
		allowOverbook bool
	}{
		{"Balanced", "balanced", false},
		{"Tight", "tight", false},
		{"Overbooked", "overbooked", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Generate(GeneratorConfig{Scenario: tt.scenario, Items: 18, Events: 40, Seed: 3, Now: genNow})

			over := 0
			for _, item := range snap.Items {
				if !item.Category.Valid() {
					t.Errorf("Invalid category %q", item.Category)
				}
				if stats.Available(item) < 0 {
					over++
				}
			}
			if !tt.allowOverbook && over > 0 {
				t.Errorf("Expected no over-allocated items, got %d", over)
			}

			if len(snap.ActiveEvents)+len(snap.ArchivedEvents) != len(snap.Events) {
				t.Errorf("Every event must be either active or archived")
			}
			for _, e := range snap.ActiveEvents {
				if e.Status.Archived() || !e.Date.After(genNow.AddDate(0, 0, -2)) {
					t.Errorf("Active event %s has status %s and date %s", e.Code, e.Status, e.Date)
				}
			}
			for _, e := range snap.ArchivedEvents {
				if !e.Status.Archived() {
					t.Errorf("Archived event %s has active status %s", e.Code, e.Status)
				}
			}
			for _, p := range snap.Payments {
				if !p.Status.Valid() || !p.Amount.IsPositive() {
					t.Errorf("Invalid payment %+v", p)
				}
				if (p.PaidDate != nil) != (p.Status == "released") {
					t.Errorf("Paid date must be set exactly for released payments: %+v", p)
				}
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := Generate(GeneratorConfig{Scenario: "balanced", Items: 6, Events: 5, Seed: 1, Now: genNow})

	if err := Save(dir, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p := datastore.NewProvider(datastore.NewStore(), dir)
	if err := p.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	counts := p.Store().Count()
	if counts["items"] != 6 || counts["events"] != 5 || counts["payments"] != len(snap.Payments) {
		t.Errorf("Unexpected counts after reload: %v", counts)
	}
}
