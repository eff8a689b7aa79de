package conference

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/transport"
	"github.com/frahmantamala/workforce-management/internal/user"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func actorFromAuth(a *auth.User) *user.User {
	return &user.User{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		Role:       a.Role,
		Department: a.Department,
		IsActive:   true,
	}
}

// Schedule handles POST /conferences
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ScheduleConferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Schedule(r.Context(), dto, actorFromAuth(principal))
	if err != nil {
		h.Logger.Error("Schedule: service error", "error", err, "host_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// GetMyConferences handles GET /conferences
func (h *Handler) GetMyConferences(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conferences, err := h.Service.GetForUser(principal.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ConferencesResponse{Conferences: conferences})
}

// GetConference handles GET /conferences/{id}
func (h *Handler) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid conference ID")
		return
	}

	c, err := h.Service.GetByID(conferenceID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, op func(int64, *user.User) (*Conference, error)) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conferenceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid conference ID")
		return
	}

	updated, err := op(conferenceID, actorFromAuth(principal))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// Start handles POST /conferences/{id}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.Service.Start)
}

// End handles POST /conferences/{id}/end
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.Service.End)
}

// Cancel handles POST /conferences/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.Service.Cancel)
}
