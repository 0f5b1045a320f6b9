package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every override so the host environment cannot leak into a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ROLODEX_DATABASE_DRIVER", "ROLODEX_DATABASE_DSN", "ROLODEX_REDIS_URL",
		"ROLODEX_AUTH_SECRET", "ROLODEX_AUTH_JWKS_URL", "ROLODEX_AUTH_AUDIENCE",
		"ROLODEX_AUTH_ISSUER", "ROLODEX_TOKEN", "ROLODEX_HTTP_ADDR",
		"ROLODEX_LOG_LEVEL", "ROLODEX_LOG_FORMAT", "ROLODEX_LOG_FILE",
		"ROLODEX_ATOMIC_SYNC",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.PickUp != " " {
		t.Errorf("Default PickUp key = %q, want space", defaults.PickUp)
	}
	if defaults.Drop != "enter" {
		t.Errorf("Default Drop key = %s, want enter", defaults.Drop)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %s, want sqlite (default)", cfg.Database.Driver)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Addr = %s, want :8080 (default)", cfg.HTTP.Addr)
	}
	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "rolodex")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `database:
  driver: postgres
  dsn: "postgres://crm@localhost/crm?sslmode=disable"
redis:
  url: "redis://localhost:6379/0"
  view_ttl: 30s
deals:
  atomic_sync: true
key_mappings:
  quit: "x"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %s, want postgres", cfg.Database.Driver)
	}
	if cfg.Redis.ViewTTL != 30*time.Second {
		t.Errorf("ViewTTL = %v, want 30s", cfg.Redis.ViewTTL)
	}
	if !cfg.Deals.AtomicSync {
		t.Error("AtomicSync should be enabled")
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", cfg.KeyMappings.Quit)
	}

	// Unspecified values should use defaults
	if cfg.KeyMappings.PickUp != " " {
		t.Errorf("Loaded PickUp key = %q, want space (default)", cfg.KeyMappings.PickUp)
	}
	if cfg.Redis.KeySpace != "rolodex" {
		t.Errorf("KeySpace = %s, want rolodex (default)", cfg.Redis.KeySpace)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ROLODEX_DATABASE_DSN", "/tmp/crm.db")
	t.Setenv("ROLODEX_TOKEN", "abc.def.ghi")
	t.Setenv("ROLODEX_ATOMIC_SYNC", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.DSN != "/tmp/crm.db" {
		t.Errorf("DSN = %s, want /tmp/crm.db", cfg.Database.DSN)
	}
	if cfg.Auth.Token != "abc.def.ghi" {
		t.Errorf("Token = %s, want abc.def.ghi", cfg.Auth.Token)
	}
	if !cfg.Deals.AtomicSync {
		t.Error("AtomicSync should be enabled from env")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database: [unterminated"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestSaveConfig(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg := &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "/tmp/test.db"},
		KeyMappings: KeyMappings{
			Quit: "x",
		},
	}
	cfg.applyDefaults()

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(tempDir, "rolodex", "config.yaml")
	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		t.Fatalf("Config file not created at %s", configPath)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Config file mode = %v, want 0600", info.Mode().Perm())
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}

	if cfg2.KeyMappings.Quit != "x" {
		t.Errorf("Reloaded Quit key = %s, want x", cfg2.KeyMappings.Quit)
	}
	if cfg2.Database.DSN != "/tmp/test.db" {
		t.Errorf("Reloaded DSN = %s, want /tmp/test.db", cfg2.Database.DSN)
	}
}
