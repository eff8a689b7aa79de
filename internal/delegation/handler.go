package delegation

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

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

// DelegateTask handles POST /delegations
func (h *Handler) DelegateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto DelegateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.DelegateTask(r.Context(), dto, actorFromAuth(principal))
	if err != nil {
		h.Logger.Error("DelegateTask: service error", "error", err, "actor_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// RespondToDelegation handles POST /delegations/{id}/respond
func (h *Handler) RespondToDelegation(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	delegationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid delegation ID")
		return
	}

	var dto RespondDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.RespondToDelegation(r.Context(), delegationID, dto, actorFromAuth(principal))
	if err != nil {
		h.Logger.Error("RespondToDelegation: service error", "error", err, "delegation_id", delegationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// EscalateDelegation handles POST /delegations/{id}/escalate
func (h *Handler) EscalateDelegation(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	delegationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid delegation ID")
		return
	}

	// body is optional: escalation defaults to the delegation target
	var dto EscalateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && err != io.EOF {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.EscalateDelegation(r.Context(), delegationID, dto, actorFromAuth(principal))
	if err != nil {
		h.Logger.Error("EscalateDelegation: service error", "error", err, "delegation_id", delegationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// GetPendingDelegations handles GET /delegations/pending
func (h *Handler) GetPendingDelegations(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pending, err := h.Service.GetPendingDelegations(principal.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DelegationsResponse{Delegations: pending})
}

// GetDelegationHistory handles GET /delegations/history?direction=FROM|TO|ALL
func (h *Handler) GetDelegationHistory(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	direction := Direction(strings.ToUpper(r.URL.Query().Get("direction")))

	history, err := h.Service.GetDelegationHistory(principal.ID, direction)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DelegationsResponse{Delegations: history})
}
