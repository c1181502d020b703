package posts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/lexicon/pkg/auth"
	"github.com/JaimeStill/lexicon/pkg/handlers"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

// Domain errors for post operations.
var (
	ErrNotFound  = errors.New("post not found")
	ErrForbidden = errors.New("you can only access your own posts")
	ErrDuplicate = errors.New("post already exists")
)

// MapHTTPStatus maps post domain errors to appropriate HTTP status codes.
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
	case errors.Is(err, handlers.ErrInvalidBody), errors.As(err, &fields):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
