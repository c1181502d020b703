package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/lexicon/pkg/formatting"
	"github.com/JaimeStill/lexicon/pkg/middleware"
	"github.com/JaimeStill/lexicon/pkg/module"
	"github.com/JaimeStill/lexicon/pkg/openapi"
	"github.com/JaimeStill/lexicon/pkg/pagination"
)

const (
	EnvAPIBasePath    = "LEXICON_API_BASE_PATH"
	EnvAPIMaxBodySize = "LEXICON_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "LEXICON_CORS_ENABLED",
	Origins:          "LEXICON_CORS_ORIGINS",
	AllowedMethods:   "LEXICON_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "LEXICON_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "LEXICON_CORS_EXPOSED_HEADERS",
	AllowCredentials: "LEXICON_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "LEXICON_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "LEXICON_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "LEXICON_PAGINATION_MAX_PAGE_SIZE",
}

var rateLimitEnv = &middleware.RateLimitEnv{
	Enabled:           "LEXICON_RATE_LIMIT_ENABLED",
	RequestsPerSecond: "LEXICON_RATE_LIMIT_RPS",
	Burst:             "LEXICON_RATE_LIMIT_BURST",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "LEXICON_OPENAPI_TITLE",
	Description: "LEXICON_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, request limits, CORS, pagination, rate
// limiting, and OpenAPI document settings.
type APIConfig struct {
	BasePath    string                     `toml:"base_path"`
	MaxBodySize string                     `toml:"max_body_size"`
	CORS        middleware.CORSConfig      `toml:"cors"`
	Pagination  pagination.Config          `toml:"pagination"`
	RateLimit   middleware.RateLimitConfig `toml:"rate_limit"`
	OpenAPI     openapi.Config             `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	if err := module.ValidatePrefix(c.BasePath); err != nil {
		return fmt.Errorf("invalid base_path: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	return nil
}
