package config

import (
	"os"
	"path/filepath"
	"strconv"

	"evplan/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	SnapshotDir         string
	ReportDir           string
	RevenuePerUnit      decimal.Decimal
	LowCapacityRatio    float64
	DefaultRange        string
	EnableMermaidCharts bool
}

// StatsOptions returns the aggregation options derived from the configuration.
func (c *AppConfig) StatsOptions() stats.Options {
	return stats.Options{
		RevenuePerUnit:   c.RevenuePerUnit,
		LowCapacityRatio: c.LowCapacityRatio,
	}
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first, so an installed server picks up its own .env
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs")),
		SnapshotDir:         getEnv("SNAPSHOT_DIR", filepath.Join(dataPath, "data")),
		ReportDir:           getEnv("REPORT_DIR", filepath.Join(dataPath, "reports")),
		RevenuePerUnit:      getEnvDecimal("REVENUE_PER_UNIT", decimal.NewFromInt(stats.DefaultRevenuePerUnit)),
		LowCapacityRatio:    getEnvFloat("LOW_CAPACITY_RATIO", stats.DefaultLowCapacityRatio),
		DefaultRange:        getEnv("DEFAULT_RANGE", "all"),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	if cfg.LowCapacityRatio <= 0 || cfg.LowCapacityRatio >= 1 {
		log.Warn().Float64("ratio", cfg.LowCapacityRatio).Msg("LOW_CAPACITY_RATIO out of range (0,1), using default")
		cfg.LowCapacityRatio = stats.DefaultLowCapacityRatio
	}
	if cfg.RevenuePerUnit.IsNegative() {
		log.Warn().Str("value", cfg.RevenuePerUnit.String()).Msg("REVENUE_PER_UNIT is negative, using default")
		cfg.RevenuePerUnit = decimal.NewFromInt(stats.DefaultRevenuePerUnit)
	}

	for _, dir := range []string{cfg.LogDir, cfg.SnapshotDir, cfg.ReportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("Failed to create directory")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}
