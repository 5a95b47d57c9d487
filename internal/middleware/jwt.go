package middleware

import (
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/utils"
)

// TokenVerifier resolves a bearer token to an identity.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token and puts the
// resolved identity into the request context.
func AuthMiddleware(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			id, err := v.Verify(token)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), id)))
		})
	}
}
