// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/lexicon/internal/config"
	"github.com/JaimeStill/lexicon/internal/infrastructure"
	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/middleware"
	"github.com/JaimeStill/lexicon/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.RateLimit(&cfg.API.RateLimit))
	m.Use(auth.Middleware(runtime.Verifier, runtime.Logger))

	return m, nil
}
