// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the pipeline configuration
type Config struct {
	// Input/output locations
	InputPath string
	OutputDir string

	// Cleaning bounds
	MaxSampleSize float64

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		InputPath:     getEnv("INPUT_PATH", "ictrp_data.csv"),
		OutputDir:     getEnv("OUTPUT_DIR", "CleanedData"),
		MaxSampleSize: getEnvAsFloat("MAX_SAMPLE_SIZE", 1_000_000),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}

	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}

	if c.MaxSampleSize <= 0 {
		return errors.New("max sample size must be positive")
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.New("log format must be json or console")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
