package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/role"
)

// RequireCapabilities gates a route on the static capability table for the
// user's role. The user passes if their role carries any of the listed
// capabilities.
func RequireCapabilities(capabilities ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			granted := role.PermissionsFor(user.Role).Capabilities

			hasCapability := false
			for _, required := range capabilities {
				for _, cap := range granted {
					if cap == required {
						hasCapability = true
						break
					}
				}
				if hasCapability {
					break
				}
			}

			if !hasCapability {
				slog.Warn("access denied: role lacks required capability",
					"user_id", user.ID,
					"user_role", user.Role,
					"required_capabilities", capabilities)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
