package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Data backend selection
	DataBackend string

	// File backend
	DataFile string

	// SQLite backend
	SQLiteDBPath string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("SPENDLY_DATA_BACKEND", "file"),
		DataFile:     getEnv("SPENDLY_DATA_FILE", "./data/spendly-finance-tracker.json"),
		SQLiteDBPath: getEnv("SPENDLY_SQLITE_DB_PATH", "./data/spendly.db"),
		LogLevel:     getEnv("SPENDLY_LOG_LEVEL", "info"),
		LogFormat:    getEnv("SPENDLY_LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "file" && c.DataFile == "" {
		errors = append(errors, "data file path is required when using file backend")
	}
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path is required when using sqlite backend")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of [text json]", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
