package autodes_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RodrigoDSVDF/autodes"
)

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := autodes.Config{DBPath: "/tmp/test.db", CacheTTL: 30 * time.Second}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() returned error for valid config: %v", err)
	}
}

func TestConfig_Validate_MissingDBPath(t *testing.T) {
	cfg := autodes.Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() returned nil, want ValidationError for missing DBPath")
	}

	var ve *autodes.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() returned %T, want *ValidationError", err)
	}
	if ve.Field != "DBPath" {
		t.Errorf("ValidationError.Field = %q, want %q", ve.Field, "DBPath")
	}
}

func TestConfig_Validate_NegativeCacheTTL(t *testing.T) {
	cfg := autodes.Config{DBPath: "/tmp/test.db", CacheTTL: -time.Second}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() returned nil, want ValidationError for negative CacheTTL")
	}

	var ve *autodes.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() returned %T, want *ValidationError", err)
	}
	if ve.Field != "CacheTTL" {
		t.Errorf("ValidationError.Field = %q, want %q", ve.Field, "CacheTTL")
	}
}

func TestConfigFromEnv_ReadsVars(t *testing.T) {
	t.Setenv("AUTODES_DB_PATH", "/tmp/env-test.db")
	t.Setenv("AUTODES_CACHE_TTL", "30s")
	t.Setenv("AUTODES_DEBUG", "1")
	t.Setenv("AUTODES_DEBUG_LOG", "/tmp/debug.log")

	cfg := autodes.ConfigFromEnv()

	if cfg.DBPath != "/tmp/env-test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/env-test.db")
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.DebugLogPath != "/tmp/debug.log" {
		t.Errorf("DebugLogPath = %q, want %q", cfg.DebugLogPath, "/tmp/debug.log")
	}
}

func TestConfigFromEnv_UnsetVarsDefaultToEmpty(t *testing.T) {
	t.Setenv("AUTODES_DB_PATH", "")
	t.Setenv("AUTODES_CACHE_TTL", "")
	t.Setenv("AUTODES_DEBUG", "")
	t.Setenv("AUTODES_DEBUG_LOG", "")

	cfg := autodes.ConfigFromEnv()

	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
}

func TestConfigFromEnv_IgnoresBadTTL(t *testing.T) {
	t.Setenv("AUTODES_CACHE_TTL", "not-a-duration")

	cfg := autodes.ConfigFromEnv()
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0 for unparseable value", cfg.CacheTTL)
	}
}

func TestDefaultConfig_IncludesDBPath(t *testing.T) {
	cfg := autodes.DefaultConfig()

	if cfg.DBPath == "" {
		t.Error("DefaultConfig() DBPath is empty, want a default path")
	}
	if !strings.HasSuffix(cfg.DBPath, "autodes.db") {
		t.Errorf("DBPath = %q, want path ending in autodes.db", cfg.DBPath)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("CacheTTL = %v, want 60s", cfg.CacheTTL)
	}
}

func TestWithDefaults_FillsUnsetFields(t *testing.T) {
	cfg := autodes.Config{}.WithDefaults()

	if cfg.DBPath == "" {
		t.Error("WithDefaults() left DBPath empty")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("CacheTTL = %v, want 60s", cfg.CacheTTL)
	}
}

func TestWithDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := autodes.Config{DBPath: "/custom/path.db", CacheTTL: 5 * time.Second}.WithDefaults()

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want /custom/path.db", cfg.DBPath)
	}
	if cfg.CacheTTL != 5*time.Second {
		t.Errorf("CacheTTL = %v, want 5s", cfg.CacheTTL)
	}
}
