package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/simple-sharing/pkg/sharing"
)

// BearerVerifier returns middleware that verifies the Authorization bearer
// token against the provider named in the route. Claims-scheme tokens are
// additionally gated on the role the request path requires.
func BearerVerifier(service sharing.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				slog.Error("Bearer token is missing")
				http.Error(w, "Bearer token is missing", http.StatusBadRequest)
				return
			}

			provider := chi.URLParam(r, "provider")
			claims, err := service.VerifyBearer(r.Context(), token, provider)
			if err != nil {
				slog.Error("Bearer token validation failed", "provider", provider)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if claims != nil {
				required := sharing.RequiredRole(r.URL.Path)
				if required == sharing.RoleAdmin && sharing.ParseRole(string(claims.Role)) == sharing.RoleGuest {
					slog.Error("Insufficient role", "provider", provider, "role", claims.Role)
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(auth, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
