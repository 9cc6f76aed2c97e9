package main

import (
	"evplan/cmd/mockgen/engine"
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	scenario := flag.String("scenario", "balanced", "Scenario to generate: balanced, tight, overbooked")
	outDir := flag.String("out", "./data", "Output directory for the JSONL fixtures")
	items := flag.Int("items", 18, "Number of inventory items to generate")
	events := flag.Int("events", 24, "Number of events to generate")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed; the same seed reproduces the same dataset")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Items:    *items,
		Events:   *events,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Items: %d, Events: %d, Seed: %d) to %s...\n", cfg.Scenario, cfg.Items, cfg.Events, cfg.Seed, *outDir)

	snap := engine.Generate(cfg)
	if err := engine.Save(*outDir, snap); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. %d items, %d active events, %d archived events, %d payment milestones.\n",
		len(snap.Items), len(snap.ActiveEvents), len(snap.ArchivedEvents), len(snap.Payments))
}
