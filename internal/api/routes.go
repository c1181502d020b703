package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/lexicon/internal/config"
	"github.com/JaimeStill/lexicon/internal/posts"
	"github.com/JaimeStill/lexicon/internal/prompts"
	"github.com/JaimeStill/lexicon/pkg/openapi"
	"github.com/JaimeStill/lexicon/pkg/routes"
)

func groups(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		domain.Prompts.Handler(runtime.MaxBodySize).Routes(),
		domain.Posts.Handler(runtime.MaxBodySize).Routes(),
	}
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	gs := groups(domain, runtime)
	routes.Register(mux, gs...)

	spec, err := buildSpec(cfg, gs)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	return nil
}

func buildSpec(cfg *config.Config, gs []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(prompts.Schemas())
	spec.Components.AddSchemas(posts.Schemas())

	routes.Document(spec, "", gs...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
