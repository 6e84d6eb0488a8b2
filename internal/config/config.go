package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// Storage tiers for the draw archive, in read-priority order.
	DatabasePath    string // optional sqlite tier
	WritableArchive string // ephemeral cache (survives within one warm context)
	BundledArchive  string // read-only archive shipped with the service
	S3Bucket        string // optional remote tier
	S3Key           string
	DataDir         string

	// Upstream draw source.
	UpstreamURL  string
	FetchTimeout time.Duration

	// Candidate search tuning.
	GenerateAttempts int
	ScoreThreshold   float64
	SuggestionCount  int

	// History maintenance.
	HistoryWindow   int
	BaselineRound   int
	RefreshSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvAsInt("PORT", 8000),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),

		DatabasePath:    getEnv("DATABASE_PATH", ""),
		WritableArchive: getEnv("WRITABLE_ARCHIVE", "/tmp/lotto_history.json"),
		BundledArchive:  getEnv("BUNDLED_ARCHIVE", "./data/lotto_history.json"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Key:           getEnv("S3_KEY", "lotto_history.json"),
		DataDir:         getEnv("DATA_DIR", "./data"),

		UpstreamURL:  getEnv("UPSTREAM_URL", "https://www.dhlottery.co.kr/common.do"),
		FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", 3*time.Second),

		GenerateAttempts: getEnvAsInt("GENERATE_ATTEMPTS", 50),
		ScoreThreshold:   getEnvAsFloat("SCORE_THRESHOLD", 85.0),
		SuggestionCount:  getEnvAsInt("SUGGESTION_COUNT", 5),

		HistoryWindow:   getEnvAsInt("HISTORY_WINDOW", 200),
		BaselineRound:   getEnvAsInt("BASELINE_ROUND", 1100),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@hourly"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.BundledArchive == "" && c.WritableArchive == "" && c.DatabasePath == "" {
		return fmt.Errorf("at least one archive location is required")
	}
	if c.GenerateAttempts < 1 {
		return fmt.Errorf("GENERATE_ATTEMPTS must be >= 1")
	}
	if c.SuggestionCount < 1 {
		return fmt.Errorf("SUGGESTION_COUNT must be >= 1")
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("HISTORY_WINDOW must be >= 1")
	}
	if c.UpstreamURL == "" {
		return fmt.Errorf("UPSTREAM_URL is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
