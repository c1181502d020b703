package posts

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/handlers"
	"github.com/JaimeStill/lexicon/pkg/pagination"
	"github.com/JaimeStill/lexicon/pkg/routes"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

// Handler provides HTTP endpoints for post operations.
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
		logger:      logger.With("handler", "posts"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for post endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/posts",
		Tags:   []string{"Posts"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, Doc: docs.list},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, Doc: docs.find},
			{Method: "POST", Pattern: "", Handler: h.Create, Doc: docs.create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, Doc: docs.update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, Doc: docs.delete},
		},
	}
}

// List returns the caller's posts, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.PageRequestFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), auth.FromContext(r.Context()), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns one of the caller's posts by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	post, err := h.sys.Find(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, post)
}

// Create processes a JSON body to create a post owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	post, err := h.sys.Create(r.Context(), auth.FromContext(r.Context()), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, post)
}

// Update processes a JSON body to replace a post the caller owns.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd Command
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	post, err := h.sys.Update(r.Context(), auth.FromContext(r.Context()), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, post)
}

// Delete removes a post the caller owns.
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

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, validation.Errors{"id": "Invalid post ID"}
	}
	return id, nil
}
