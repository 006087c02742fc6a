package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/pixelbloom/inventory-service/pkg/auth"
	"github.com/pixelbloom/inventory-service/pkg/logger"
)

type contextKey string

const (
	// UserIDKey carries the authenticated user id in the request context.
	UserIDKey contextKey = "user_id"
	// RoleKey carries the authenticated user role in the request context.
	RoleKey contextKey = "role"
)

// AuthMiddleware validates the bearer token and stores its claims in the
// request context. It is registered only when auth enforcement is enabled
// in the middleware config; the default deployment terminates auth at the
// gateway.
func AuthMiddleware(validator *auth.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondDetail(w, http.StatusUnauthorized, "authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondDetail(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				respondDetail(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
