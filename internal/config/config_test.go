package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"evplan/internal/stats"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `CLIENT_LABEL='Harbor "Blue" Hall'`
	path := filepath.Join(t.TempDir(), ".env.test")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `Harbor "Blue" Hall`
	if env["CLIENT_LABEL"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["CLIENT_LABEL"])
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)
	t.Setenv("REVENUE_PER_UNIT", "12.50")
	t.Setenv("LOW_CAPACITY_RATIO", "0.3")
	t.Setenv("DEFAULT_RANGE", "90 days")
	t.Setenv("ENABLE_MERMAID_CHARTS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.RevenuePerUnit.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("RevenuePerUnit = %s", cfg.RevenuePerUnit)
	}
	if cfg.LowCapacityRatio != 0.3 || cfg.DefaultRange != "90 days" || !cfg.EnableMermaidCharts {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.LogDir != filepath.Join(dir, "logs") {
		t.Errorf("LogDir = %s", cfg.LogDir)
	}
	if cfg.SnapshotDir != filepath.Join(dir, "data") {
		t.Errorf("SnapshotDir = %s", cfg.SnapshotDir)
	}
	if _, err := os.Stat(cfg.ReportDir); err != nil {
		t.Errorf("Report directory not created: %v", err)
	}
	if opts := cfg.StatsOptions(); opts.LowCapacityRatio != 0.3 {
		t.Errorf("StatsOptions did not carry ratio: %+v", opts)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("REVENUE_PER_UNIT", "-3")
	t.Setenv("LOW_CAPACITY_RATIO", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.RevenuePerUnit.Equal(decimal.NewFromInt(stats.DefaultRevenuePerUnit)) {
		t.Errorf("Expected default revenue per unit, got %s", cfg.RevenuePerUnit)
	}
	if cfg.LowCapacityRatio != stats.DefaultLowCapacityRatio {
		t.Errorf("Expected default ratio, got %v", cfg.LowCapacityRatio)
	}
}

func TestLoad_LogsFolderOverride(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	logs := filepath.Join(t.TempDir(), "custom-logs")
	t.Setenv("LOGS_FOLDER", logs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogDir != logs {
		t.Errorf("LogDir = %s, want %s", cfg.LogDir, logs)
	}
}
