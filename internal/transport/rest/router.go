package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/conference"
	"github.com/frahmantamala/workforce-management/internal/delegation"
	"github.com/frahmantamala/workforce-management/internal/notification"
	"github.com/frahmantamala/workforce-management/internal/task"
	"github.com/frahmantamala/workforce-management/internal/transport/middleware"
	"github.com/frahmantamala/workforce-management/internal/transport/swagger"
	"github.com/frahmantamala/workforce-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Task         *task.Handler
	Delegation   *delegation.Handler
	Notification *notification.Handler
	Conference   *conference.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, guards *auth.RoleAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth == nil {
			return
		}
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			if h.User != nil {
				pr.Get("/roles", h.User.ListRolePermissions)
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Get("/users/me/permissions", h.User.GetMyPermissions)
				pr.Get("/users/department/{department}", h.User.GetUsersByDepartment)
				pr.Patch("/users/{id}", h.User.UpdateUser)

				// Management-only directory routes
				pr.Group(func(mr chi.Router) {
					mr.Use(guards.RequireManagingRole())
					mr.Post("/users", h.User.CreateUser)
					mr.Get("/users/managed", h.User.GetManagedUsers)
					mr.Delete("/users/{id}", h.User.DeactivateUser)
				})
			}

			if h.Task != nil {
				pr.Route("/tasks", func(tr chi.Router) {
					tr.Post("/", h.Task.CreateTask)
					tr.Get("/", h.Task.GetMyTasks)
					tr.Get("/{id}", h.Task.GetTask)
					tr.Patch("/{id}/progress", h.Task.UpdateProgress)
				})
			}

			if h.Delegation != nil {
				pr.Route("/delegations", func(dr chi.Router) {
					dr.Post("/", h.Delegation.DelegateTask)
					dr.Get("/pending", h.Delegation.GetPendingDelegations)
					dr.Get("/history", h.Delegation.GetDelegationHistory)
					dr.Post("/{id}/respond", h.Delegation.RespondToDelegation)

					// Escalation is reserved for MANAGER and above
					dr.Group(func(er chi.Router) {
						er.Use(guards.RequireManagerOrAbove())
						er.Post("/{id}/escalate", h.Delegation.EscalateDelegation)
					})
				})
			}

			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.Get("/", h.Notification.GetInbox)
					nr.Post("/read-all", h.Notification.MarkAllRead)
					nr.Post("/{id}/read", h.Notification.MarkRead)
				})
			}

			if h.Conference != nil {
				pr.Route("/conferences", func(cr chi.Router) {
					// Scheduling requires a meeting-leading capability;
					// plain employees only join.
					cr.Group(func(sr chi.Router) {
						sr.Use(middleware.RequireCapabilities(
							"Conduct team meetings",
							"Coordinate between teams",
							"Conduct performance reviews",
							"Approve major decisions",
						))
						sr.Post("/", h.Conference.Schedule)
					})
					cr.Get("/", h.Conference.GetMyConferences)
					cr.Get("/{id}", h.Conference.GetConference)
					cr.Post("/{id}/start", h.Conference.Start)
					cr.Post("/{id}/end", h.Conference.End)
					cr.Post("/{id}/cancel", h.Conference.Cancel)
				})
			}
		})
	})
}
