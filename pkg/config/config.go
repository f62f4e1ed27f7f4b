package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Output
	OutputFormat string // text, json
	LogLevel     string
	Verbose      bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		StorageEnabled: getEnvBool("STORAGE_ENABLED", false),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost port=5432 user=advisor password=devpassword dbname=workload_advisor sslmode=disable"),
		OutputFormat:   getEnv("OUTPUT_FORMAT", "text"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Verbose:        false,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.OutputFormat != "text" && c.OutputFormat != "json" {
		return fmt.Errorf("output format must be text or json, got %q", c.OutputFormat)
	}
	return nil
}
