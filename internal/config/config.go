// Package config loads runtime configuration from environment variables,
// with an optional .env file picked up from the working directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds everything the application reads from the environment.
// Every field has a working default; nothing is required.
type Config struct {
	// DataDir is where the local collections are persisted.
	DataDir string

	// Cloud provider endpoints, overridable for testing.
	GitHubBaseURL  string
	JSONBinBaseURL string
	GCSBucket      string

	// ProbeAddr is dialed by the connectivity check.
	ProbeAddr string

	// Logging configuration.
	LogLevel  string
	LogFormat string
}

// Load reads the environment into a Config. A .env file is loaded first
// when present; a missing file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir:        getEnv("NEXO_DATA_DIR", defaultDataDir()),
		GitHubBaseURL:  getEnv("NEXO_GITHUB_BASE_URL", ""),
		JSONBinBaseURL: getEnv("NEXO_JSONBIN_BASE_URL", ""),
		GCSBucket:      getEnv("NEXO_GCS_BUCKET", ""),
		ProbeAddr:      getEnv("NEXO_PROBE_ADDR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nexo"
	}
	return filepath.Join(home, ".nexo")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
