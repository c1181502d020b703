package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/lexicon/pkg/handlers"
)

// Middleware resolves an optional "Authorization: Bearer" header into a User
// on the request context. Requests without the header pass through
// anonymously; an invalid token is rejected with 401.
// A nil verifier treats every request as anonymous.
func Middleware(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}

			user, err := verifier.Verify(r.Context(), strings.TrimSpace(token))
			if err != nil {
				logger.Debug("token rejected", "error", err)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
