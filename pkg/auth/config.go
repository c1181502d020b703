package auth

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the identity provider settings used to verify bearer tokens.
type Config struct {
	Issuer     string   `toml:"issuer"`
	Audience   string   `toml:"audience"`
	JWKSURL    string   `toml:"jwks_url"`
	Algorithms []string `toml:"algorithms"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Issuer     string
	Audience   string
	JWKSURL    string
	Algorithms string
}

// Enabled reports whether an issuer is configured.
// Without one, every request is treated as anonymous.
func (c *Config) Enabled() bool {
	return c.Issuer != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.JWKSURL != "" {
		c.JWKSURL = overlay.JWKSURL
	}
	if len(overlay.Algorithms) > 0 {
		c.Algorithms = overlay.Algorithms
	}
}

func (c *Config) loadDefaults() {
	if c.Audience == "" {
		c.Audience = "authenticated"
	}
	if c.JWKSURL == "" && c.Issuer != "" {
		c.JWKSURL = strings.TrimSuffix(c.Issuer, "/") + "/.well-known/jwks.json"
	}
	if len(c.Algorithms) == 0 {
		c.Algorithms = []string{"RS256", "ES256"}
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Audience != "" {
		if v := os.Getenv(env.Audience); v != "" {
			c.Audience = v
		}
	}
	if env.JWKSURL != "" {
		if v := os.Getenv(env.JWKSURL); v != "" {
			c.JWKSURL = v
		}
	}
	if env.Algorithms != "" {
		if v := os.Getenv(env.Algorithms); v != "" {
			algs := strings.Split(v, ",")
			for i := range algs {
				algs[i] = strings.TrimSpace(algs[i])
			}
			c.Algorithms = algs
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled() {
		return nil
	}
	if !strings.HasPrefix(c.Issuer, "https://") && !strings.HasPrefix(c.Issuer, "http://") {
		return fmt.Errorf("issuer must be an http(s) URL: %s", c.Issuer)
	}
	return nil
}
