package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the application settings read from the environment.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default
	// location resolved by the store.
	DBPath string

	// TracesDir holds authored trace files (*.json). Empty disables
	// loading authored traces.
	TracesDir string

	// User and PasswordHash configure the login gate. The gate is open
	// when either is empty. PasswordHash is a bcrypt hash.
	User         string
	PasswordHash string

	// LogLevel is one of debug, info, warn, error. LogFormat is text or json.
	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file in the working directory and then the
// TRACETUTOR_* environment variables. Variables already set in the
// environment win over the .env file.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(envFile), err)
	}

	cfg := &Config{
		DBPath:       os.Getenv("TRACETUTOR_DB"),
		TracesDir:    os.Getenv("TRACETUTOR_TRACES_DIR"),
		User:         os.Getenv("TRACETUTOR_USER"),
		PasswordHash: os.Getenv("TRACETUTOR_PASSWORD_HASH"),
		LogLevel:     getEnv("TRACETUTOR_LOG_LEVEL", "info"),
		LogFormat:    getEnv("TRACETUTOR_LOG_FORMAT", "text"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("TRACETUTOR_LOG_LEVEL: unknown level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("TRACETUTOR_LOG_FORMAT: unknown format %q", c.LogFormat)
	}
	return nil
}

// AuthEnabled reports whether login credentials are configured.
func (c *Config) AuthEnabled() bool {
	return c.User != "" && c.PasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
