package server

import (
	"net/http"
	"strings"

	"github.com/groblegark/orderledger/internal/auth"
)

// authMiddleware checks the Authorization header for a Bearer token known to
// the registry and attaches the resolved principal to the request context.
// With an empty registry auth is disabled and all requests pass through.
// GET /v1/health is always exempt.
func (s *OrdersServer) authMiddleware(next http.Handler) http.Handler {
	if s.registry.Empty() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Exempt health check.
		if r.Method == http.MethodGet && r.URL.Path == "/v1/health" {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "invalid authorization scheme")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		principal, ok := s.registry.Lookup(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}
