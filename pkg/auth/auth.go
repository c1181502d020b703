// Package auth resolves bearer tokens issued by an OpenID Connect provider
// into authenticated users.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnauthenticated indicates an operation requires an authenticated caller.
var ErrUnauthenticated = errors.New("authentication required")

// User is the authenticated caller resolved from a verified token.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
}

// DisplayName returns the user's name, falling back to email, then "Anonymous".
func (u *User) DisplayName() string {
	if u == nil {
		return "Anonymous"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Anonymous"
}

// Require returns ErrUnauthenticated when user is nil.
func Require(user *User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	return nil
}

type contextKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the user stored on ctx, or nil for anonymous requests.
func FromContext(ctx context.Context) *User {
	user, _ := ctx.Value(contextKey{}).(*User)
	return user
}
