package auth_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-jose/go-jose/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/pkg/auth"
)

const testIssuer = "https://id.example.com/auth/v1"

var signingKey = sync.OnceValue(func() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return key
})

func testVerifier(t *testing.T) auth.Verifier {
	t.Helper()
	cfg := auth.Config{Issuer: testIssuer}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	keys := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&signingKey().PublicKey}}
	return auth.NewKeySetVerifier(keys, &cfg)
}

func validClaims(sub string) map[string]any {
	return map[string]any{
		"iss":   testIssuer,
		"aud":   "authenticated",
		"sub":   sub,
		"email": "ada@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func sign(t *testing.T, key *rsa.PrivateKey, claims map[string]any) string {
	t.Helper()

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}

	obj, err := signer.Sign(payload)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	raw, err := obj.CompactSerialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return raw
}

func TestVerifyMapsClaims(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		metadata map[string]any
		want     string
	}{
		{"full name", map[string]any{"full_name": "Ada Lovelace", "name": "ada"}, "Ada Lovelace"},
		{"name fallback", map[string]any{"name": "ada"}, "ada"},
		{"no metadata", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims(id.String())
			if tt.metadata != nil {
				claims["user_metadata"] = tt.metadata
			}

			user, err := testVerifier(t).Verify(context.Background(), sign(t, signingKey(), claims))
			if err != nil {
				t.Fatalf("verify failed: %v", err)
			}

			want := &auth.User{ID: id, Email: "ada@example.com", Name: tt.want}
			if diff := cmp.Diff(want, user); diff != "" {
				t.Errorf("user mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tests := []struct {
		name   string
		key    *rsa.PrivateKey
		mutate func(map[string]any)
	}{
		{"wrong audience", signingKey(), func(c map[string]any) { c["aud"] = "service_role" }},
		{"wrong issuer", signingKey(), func(c map[string]any) { c["iss"] = "https://evil.example.com" }},
		{"expired", signingKey(), func(c map[string]any) { c["exp"] = time.Now().Add(-time.Hour).Unix() }},
		{"non-uuid subject", signingKey(), func(c map[string]any) { c["sub"] = "user-42" }},
		{"unknown key", otherKey, func(map[string]any) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims(uuid.NewString())
			tt.mutate(claims)

			_, err := testVerifier(t).Verify(context.Background(), sign(t, tt.key, claims))
			if !errors.Is(err, auth.ErrUnauthenticated) {
				t.Errorf("got %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	_, err := testVerifier(t).Verify(context.Background(), "not-a-jwt")
	if !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("got %v, want ErrUnauthenticated", err)
	}
}
