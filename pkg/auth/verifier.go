package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
)

// Verifier turns a raw bearer token into an authenticated user.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

type claims struct {
	Subject      string `json:"sub"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a Verifier that fetches signing keys from the
// configured JWKS endpoint and checks issuer, audience, and expiry.
func NewVerifier(ctx context.Context, cfg *Config) Verifier {
	keySet := oidc.NewRemoteKeySet(ctx, cfg.JWKSURL)
	return NewKeySetVerifier(keySet, cfg)
}

// NewKeySetVerifier creates a Verifier over an explicit key set.
func NewKeySetVerifier(keySet oidc.KeySet, cfg *Config) Verifier {
	return &oidcVerifier{
		verifier: oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{
			ClientID:             cfg.Audience,
			SupportedSigningAlgs: cfg.Algorithms,
		}),
	}
}

func (v *oidcVerifier) Verify(ctx context.Context, token string) (*User, error) {
	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	var c claims
	if err := idToken.Claims(&c); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", ErrUnauthenticated, err)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrUnauthenticated)
	}

	name := c.UserMetadata.FullName
	if name == "" {
		name = c.UserMetadata.Name
	}

	return &User{
		ID:    id,
		Email: c.Email,
		Name:  name,
	}, nil
}
