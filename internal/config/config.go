package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig `yaml:"database"`
	Redis       RedisConfig    `yaml:"redis"`
	Auth        AuthConfig     `yaml:"auth"`
	HTTP        HTTPConfig     `yaml:"http"`
	Log         LogConfig      `yaml:"log"`
	Deals       DealsConfig    `yaml:"deals"`
	KeyMappings KeyMappings    `yaml:"key_mappings"`
}

// DatabaseConfig selects the SQL driver and connection string.
// Driver is "sqlite" (local file) or "postgres" (hosted).
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// RedisConfig enables the shared view cache. An empty URL keeps views in memory.
type RedisConfig struct {
	URL      string        `yaml:"url"`
	ViewTTL  time.Duration `yaml:"view_ttl"`
	KeySpace string        `yaml:"key_space"`
}

// AuthConfig configures how session tokens are verified and, for the CLI,
// which token identifies the caller.
type AuthConfig struct {
	Secret   string `yaml:"secret"`
	JWKSURL  string `yaml:"jwks_url"`
	Audience string `yaml:"audience"`
	Issuer   string `yaml:"issuer"`
	Token    string `yaml:"token"`
}

// HTTPConfig configures the API server
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowOrigins    []string      `yaml:"allow_origins"`
}

// LogConfig configures slog output
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`   // empty means ~/.rolodex/logs/rolodex.log, "-" means stderr
}

// DealsConfig tunes the pipeline behaviour
type DealsConfig struct {
	// AtomicSync applies a board reorder batch in a single transaction
	AtomicSync bool `yaml:"atomic_sync"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		Redis: RedisConfig{
			ViewTTL:  5 * time.Minute,
			KeySpace: "rolodex",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			AllowOrigins:    []string{"*"},
		},
		Log:         LogConfig{Level: "info", Format: "text"},
		KeyMappings: DefaultKeyMappings(),
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path, falling back to defaults when
// the file does not exist
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := Default()
		config.applyEnv()
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// The file may carry the auth secret
	return os.WriteFile(configPath, data, 0o600)
}

// DataDir returns ~/.rolodex, where the local database and logs live
func DataDir() (string, error) {
	if dir := os.Getenv("ROLODEX_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rolodex"), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "rolodex", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "rolodex", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Database.Driver == "" {
		c.Database.Driver = defaults.Database.Driver
	}
	if c.Redis.ViewTTL <= 0 {
		c.Redis.ViewTTL = defaults.Redis.ViewTTL
	}
	if c.Redis.KeySpace == "" {
		c.Redis.KeySpace = defaults.Redis.KeySpace
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaults.HTTP.Addr
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = defaults.HTTP.ShutdownTimeout
	}
	if len(c.HTTP.AllowOrigins) == 0 {
		c.HTTP.AllowOrigins = defaults.HTTP.AllowOrigins
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	c.KeyMappings.applyDefaults()
}

// applyEnv overrides file values with ROLODEX_* environment variables
func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("ROLODEX_DATABASE_DRIVER", &c.Database.Driver)
	setString("ROLODEX_DATABASE_DSN", &c.Database.DSN)
	setString("ROLODEX_REDIS_URL", &c.Redis.URL)
	setString("ROLODEX_AUTH_SECRET", &c.Auth.Secret)
	setString("ROLODEX_AUTH_JWKS_URL", &c.Auth.JWKSURL)
	setString("ROLODEX_AUTH_AUDIENCE", &c.Auth.Audience)
	setString("ROLODEX_AUTH_ISSUER", &c.Auth.Issuer)
	setString("ROLODEX_TOKEN", &c.Auth.Token)
	setString("ROLODEX_HTTP_ADDR", &c.HTTP.Addr)
	setString("ROLODEX_LOG_LEVEL", &c.Log.Level)
	setString("ROLODEX_LOG_FORMAT", &c.Log.Format)
	setString("ROLODEX_LOG_FILE", &c.Log.File)

	if v := os.Getenv("ROLODEX_ATOMIC_SYNC"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Deals.AtomicSync = parsed
		}
	}
}
