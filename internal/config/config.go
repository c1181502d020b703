// Package config loads the Lexicon service configuration from TOML files,
// a .env file, and LEXICON_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvLexiconEnv             = "LEXICON_ENV"
	EnvLexiconShutdownTimeout = "LEXICON_SHUTDOWN_TIMEOUT"
	EnvLexiconVersion         = "LEXICON_VERSION"
)

var databaseEnv = &database.Env{
	DSN:             "LEXICON_DB_DSN",
	Host:            "LEXICON_DB_HOST",
	Port:            "LEXICON_DB_PORT",
	Name:            "LEXICON_DB_NAME",
	User:            "LEXICON_DB_USER",
	Password:        "LEXICON_DB_PASSWORD",
	SSLMode:         "LEXICON_DB_SSL_MODE",
	MaxOpenConns:    "LEXICON_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "LEXICON_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "LEXICON_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "LEXICON_DB_CONN_TIMEOUT",
}

var authEnv = &auth.Env{
	Issuer:     "LEXICON_AUTH_ISSUER",
	Audience:   "LEXICON_AUTH_AUDIENCE",
	JWKSURL:    "LEXICON_AUTH_JWKS_URL",
	Algorithms: "LEXICON_AUTH_ALGORITHMS",
}

// Config is the root configuration for the Lexicon service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Auth            auth.Config     `toml:"auth"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the LEXICON_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvLexiconEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads .env (if present), the base config (if present), applies any
// environment overlay, and finalizes all values. If no config.toml exists,
// defaults and environment variables provide all configuration.
func Load() (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

// Finalize applies defaults, environment overrides, and validation to the
// root config and every sub-config.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvLexiconShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvLexiconVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvLexiconEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
