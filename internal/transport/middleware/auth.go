package middleware

import (
	"net/http"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

// UserContext enriches the request-scoped logger with the authenticated
// user. Must run after the auth middleware.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.UserFromContext(r.Context()); ok && u != nil {
			ctx := logger.With(r.Context(), "user_id", u.ID, "user_role", u.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}
