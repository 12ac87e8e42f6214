package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/pkg/utils"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (entities.User, error)
}

type userKey struct{}

func withUser(ctx context.Context, u entities.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated user placed by Authenticate.
func UserFromContext(ctx context.Context) (entities.User, bool) {
	u, ok := ctx.Value(userKey{}).(entities.User)
	return u, ok
}

// Authenticate resolves a Bearer token into a user and stores it on the
// request context. Requests without a valid token get a 401.
func Authenticate(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				utils.WriteError(w, "you are not logged in", http.StatusUnauthorized)
				return
			}

			user, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				utils.WriteError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireRole gates a route to the given roles. Must run after
// Authenticate.
func RequireRole(roles ...entities.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				utils.WriteError(w, "you are not logged in", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteError(w, "you do not have permission to perform this action", http.StatusForbidden)
		})
	}
}
