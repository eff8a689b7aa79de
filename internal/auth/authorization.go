package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/workforce-management/internal/role"
)

// RoleAuthorization provides route guards on top of the role hierarchy.
// Fine-grained checks (who may touch which record) stay in the services;
// these guards only gate whole routes by seniority.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) require(next http.Handler, allowed func(*User) bool, label string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			ra.logger.Warn("authorization check failed: user not found in context", "guard", label)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !allowed(user) {
			ra.logger.WarnContext(r.Context(), "access denied",
				"guard", label,
				"user_id", user.ID,
				"user_role", user.Role)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManagerOrAbove gates routes reserved for MANAGER seniority or
// better, such as delegation escalation.
func (ra *RoleAuthorization) RequireManagerOrAbove() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.require(next, func(u *User) bool {
			return u.IsManagerOrAbove()
		}, "manager_or_above")
	}
}

// RequireManagingRole gates routes that require any management authority at
// all (everyone except plain employees).
func (ra *RoleAuthorization) RequireManagingRole() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.require(next, func(u *User) bool {
			return role.Level(u.Role) < role.Level(role.Employee)
		}, "managing_role")
	}
}
