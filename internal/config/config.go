package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"procure/internal/logger"
)

type Config struct {
	// Procurement API Configuration
	APIBaseURL string
	APIToken   string

	// ProjectID scopes invoice listings; "all" (or empty) means no
	// project filter is sent.
	ProjectID string

	// Request timeout for a single API call
	RequestTimeout time.Duration

	// Google Sheets Configuration (optional, stock report export)
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		APIBaseURL:           getEnv("PROCURE_API_BASE_URL", ""),
		APIToken:             getEnv("PROCURE_API_TOKEN", ""),
		ProjectID:            getEnv("PROCURE_PROJECT_ID", "all"),
		RequestTimeout:       getDurationEnv("PROCURE_REQUEST_TIMEOUT", 30*time.Second),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Stock_Valuation"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("PROCURE_API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("PROCURE_API_BASE_URL must be an http(s) URL")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
