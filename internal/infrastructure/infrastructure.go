// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, token verification) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/lexicon/internal/config"
	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/database"
	"github.com/JaimeStill/lexicon/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and bearer token verification.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Verifier  auth.Verifier
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// Verifier is nil when no identity provider is configured, which leaves every
// request anonymous.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	lc := lifecycle.New(logger)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var verifier auth.Verifier
	if cfg.Auth.Enabled() {
		verifier = auth.NewVerifier(lc.Context(), &cfg.Auth)
		logger.Info("token verification enabled", "issuer", cfg.Auth.Issuer, "jwks_url", cfg.Auth.JWKSURL)
	} else {
		logger.Warn("no auth issuer configured; all requests are anonymous")
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Verifier:  verifier,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
