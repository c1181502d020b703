package prompts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/handlers"
	"github.com/JaimeStill/lexicon/pkg/pagination"
	"github.com/JaimeStill/lexicon/pkg/routes"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	maxBodySize int64,
) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "prompts"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Tags:   []string{"Prompts"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, Doc: docs.list},
			{Method: "POST", Pattern: "/search", Handler: h.Search, Doc: docs.search},
			{Method: "GET", Pattern: "/categories", Handler: h.Categories, Doc: docs.categories},
			{Method: "GET", Pattern: "/mine", Handler: h.Mine, Doc: docs.mine},
			{Method: "GET", Pattern: "/favorites", Handler: h.Favorites, Doc: docs.favorites},
			{Method: "GET", Pattern: "/favorites/ids", Handler: h.FavoriteIDs, Doc: docs.favoriteIDs},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, Doc: docs.find},
			{Method: "POST", Pattern: "", Handler: h.Create, Doc: docs.create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, Doc: docs.update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, Doc: docs.delete},
			{Method: "POST", Pattern: "/{id}/favorite/toggle", Handler: h.Toggle, Doc: docs.toggle},
			{Method: "PUT", Pattern: "/{id}/favorite", Handler: h.Favorite, Doc: docs.favorite},
			{Method: "DELETE", Pattern: "/{id}/favorite", Handler: h.Unfavorite, Doc: docs.unfavorite},
		},
	}
}

// List searches prompts using the q, category, page, and limit query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := SearchRequestFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.search(w, r, req)
}

// Search accepts a JSON body with search and pagination criteria and returns matching prompts.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.search(w, r, req)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	result, err := h.sys.Search(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Categories returns every distinct prompt category in alphabetical order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.sys.Categories(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, categories)
}

// Mine returns the caller's own prompts, newest first.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.PageRequestFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Mine(r.Context(), auth.FromContext(r.Context()), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Favorites returns the prompts the caller has favorited.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.PageRequestFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Favorites(r.Context(), auth.FromContext(r.Context()), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FavoriteIDs returns the ids of every prompt the caller has favorited.
func (h *Handler) FavoriteIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.sys.FavoriteIDs(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ids)
}

// Find returns a single prompt by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	prompt, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompt)
}

// Create processes a JSON body to create a prompt owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	prompt, err := h.sys.Create(r.Context(), auth.FromContext(r.Context()), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, prompt)
}

// Update processes a JSON body to replace a prompt the caller owns.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	prompt, err := h.sys.Update(r.Context(), auth.FromContext(r.Context()), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompt)
}

// Delete removes a prompt the caller owns, along with its favorites.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Toggle flips the caller's favorite on a prompt.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.sys.Toggle)
}

// Favorite adds the prompt to the caller's favorites. Repeating it is a no-op.
func (h *Handler) Favorite(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.sys.Favorite)
}

// Unfavorite removes the prompt from the caller's favorites. Repeating it is a no-op.
func (h *Handler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.sys.Unfavorite)
}

type favoriteOp func(ctx context.Context, user *auth.User, id uuid.UUID) (*FavoriteState, error)

func (h *Handler) favorite(w http.ResponseWriter, r *http.Request, op favoriteOp) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	state, err := op(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, validation.Errors{"id": "Invalid prompt ID"}
	}
	return id, nil
}
