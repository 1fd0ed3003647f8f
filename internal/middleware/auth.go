package middleware

import (
	"net/http"
	"strings"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// TokenParser resolves a bearer token to the caller it identifies.
type TokenParser interface {
	Parse(raw string) (domain.Principal, error)
}

// NewAuth returns a middleware that requires a valid bearer token and stores
// the resulting principal in the request context. Missing or invalid tokens
// get 401.
func NewAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			principal, err := tokens.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin rejects callers without the admin role with 403. It must run
// after NewAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := domain.PrincipalFrom(r.Context())
		if !ok || !p.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearer(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
