// Package handlers provides JSON response and request helpers shared by
// domain HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/lexicon/pkg/validation"
)

// ErrInvalidBody indicates the request body could not be decoded.
var ErrInvalidBody = errors.New("invalid request body")

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes err as a JSON error body.
// Validation failures include per-field messages. Server errors are logged
// with full detail and written with a generic message only.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
		RespondJSON(w, status, ErrorResponse{Error: http.StatusText(status)})
		return
	}

	resp := ErrorResponse{Error: err.Error()}

	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Error = "validation failed"
		resp.Fields = fields
	}

	RespondJSON(w, status, resp)
}

// DecodeJSON decodes the request body into v, reading at most maxBytes.
// A non-positive maxBytes disables the limit.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
