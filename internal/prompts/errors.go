package prompts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/handlers"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

// Domain errors for prompt operations.
var (
	ErrNotFound  = errors.New("prompt not found")
	ErrForbidden = errors.New("you can only modify your own prompts")
	ErrDuplicate = errors.New("prompt already exists")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var fields validation.Errors
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, handlers.ErrInvalidBody),
		errors.As(err, &fields):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
