// Package config provides runtime configuration loaded from environment
// variables. CLI flags layer on top of these values.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fpl-analytics/fpl-pipeline/internal/platform/logging"
)

// Config stores runtime configuration for the ingestion pipeline.
type Config struct {
	ServiceName    string
	FPLBaseURL     string
	FPLUserAgent   string
	FPLTimeout     time.Duration
	RateLimitDelay time.Duration
	DataDir        string
	LogDir         string
	TableFormat    string
	LogLevel       logging.Level
}

func Load() (Config, error) {
	fplTimeout, err := time.ParseDuration(getEnv("FPL_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	if fplTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_TIMEOUT must be > 0")
	}

	rateLimitDelay, err := time.ParseDuration(getEnv("FPL_RATE_LIMIT_DELAY", "100ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_RATE_LIMIT_DELAY: %w", err)
	}
	if rateLimitDelay < 0 {
		return Config{}, fmt.Errorf("FPL_RATE_LIMIT_DELAY must be >= 0")
	}

	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	if dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}

	cfg := Config{
		ServiceName:    getEnv("APP_SERVICE_NAME", "fpl-pipeline"),
		FPLBaseURL:     strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLUserAgent:   strings.TrimSpace(getEnv("FPL_USER_AGENT", "FPL-Data-Pipeline/1.0")),
		FPLTimeout:     fplTimeout,
		RateLimitDelay: rateLimitDelay,
		DataDir:        dataDir,
		LogDir:         strings.TrimSpace(getEnv("LOG_DIR", "logs")),
		TableFormat:    strings.ToLower(strings.TrimSpace(getEnv("TABLE_FORMAT", "parquet"))),
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
