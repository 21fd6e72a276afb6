package autodes

import (
	"os"
	"time"

	"github.com/RodrigoDSVDF/autodes/internal/store"
)

// Config configures the autodes client.
type Config struct {
	// DBPath is the path to the local SQLite database.
	// If empty, defaults to ~/.autodes/autodes.db.
	DBPath string

	// CacheTTL bounds how long the loaded series is reused before the
	// store is read again. Defaults to 60 seconds.
	CacheTTL time.Duration

	// Debug enables verbose logging of store reads, cache behavior,
	// and full error details.
	Debug bool

	// DebugLogPath is the path to write debug logs.
	// Defaults to stderr if empty.
	DebugLogPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:   store.DefaultDBPath(),
		CacheTTL: 60 * time.Second,
	}
}

// ConfigFromEnv reads configuration from environment variables.
//
//	AUTODES_DB_PATH    → DBPath
//	AUTODES_CACHE_TTL  → CacheTTL (Go duration, e.g. "30s")
//	AUTODES_DEBUG      → Debug (any non-empty value enables)
//	AUTODES_DEBUG_LOG  → DebugLogPath
func ConfigFromEnv() Config {
	cfg := Config{
		DBPath:       os.Getenv("AUTODES_DB_PATH"),
		Debug:        os.Getenv("AUTODES_DEBUG") != "",
		DebugLogPath: os.Getenv("AUTODES_DEBUG_LOG"),
	}
	if raw := os.Getenv("AUTODES_CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			cfg.CacheTTL = ttl
		}
	}
	return cfg
}

// Validate checks the configuration for errors.
// Returns *ValidationError for invalid fields.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return &ValidationError{Field: "DBPath", Message: "required: path to SQLite database"}
	}
	if c.CacheTTL < 0 {
		return &ValidationError{Field: "CacheTTL", Message: "must be non-negative"}
	}
	return nil
}

// WithDefaults fills in default values for unset fields.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.DBPath == "" {
		c.DBPath = defaults.DBPath
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaults.CacheTTL
	}
	return c
}
