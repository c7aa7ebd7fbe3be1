package middleware

import (
	"net/http"
	"strings"

	"github.com/imagedrop/service/internal/auth"
	"github.com/imagedrop/service/internal/response"
)

// RequireAPIKey returns middleware that validates the shared secret in the
// Authorization header. Credential validation runs before any payload is
// looked at, so a bad key never causes a storage write. A "Bearer " prefix
// is tolerated for clients that send one.
func RequireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}
			presented := strings.TrimPrefix(header, "Bearer ")
			if !auth.SecretsMatch(presented, apiKey) {
				response.Unauthorized(w, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
