package claim

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danuprasetya/hr-management/internal/rbac"
	"github.com/danuprasetya/hr-management/internal/transport"
	"github.com/danuprasetya/hr-management/internal/transport/middleware"
	"github.com/danuprasetya/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SubmitClaim(ctx context.Context, profileID string, dto CreateClaimDTO) (*Claim, error)
	GetClaimByID(ctx context.Context, id int64, requesterID string, canViewAll bool) (*Claim, error)
	GetOwnClaims(ctx context.Context, profileID string, limit, offset int) ([]*Claim, error)
	GetAllClaims(ctx context.Context, limit, offset int) ([]*Claim, error)
	ApproveClaim(ctx context.Context, claimID int64, approverID string) (*Claim, error)
	RejectClaim(ctx context.Context, claimID int64, approverID string, dto RejectClaimDTO) (*Claim, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// SubmitClaim handles POST /claims
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	prof, ok := middleware.ProfileFromContext(r.Context())
	if !ok || prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitClaim: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Error("SubmitClaim: validation error", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.SubmitClaim(r.Context(), prof.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitClaim: service error", "error", err, "profile_id", prof.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// GetClaim handles GET /claims/{id}
func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	prof, ok := middleware.ProfileFromContext(r.Context())
	if !ok || prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	claimID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	canViewAll := rbac.HasPermission(prof.Role, rbac.ModuleClaims, rbac.ActionApprove)
	found, err := h.Service.GetClaimByID(r.Context(), claimID, prof.ID, canViewAll)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

// ListClaims handles GET /claims. Approvers see every claim; everyone else
// sees only their own.
func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	prof, ok := middleware.ProfileFromContext(r.Context())
	if !ok || prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := pageParams(r)

	var (
		claims []*Claim
		err    error
	)
	if rbac.HasPermission(prof.Role, rbac.ModuleClaims, rbac.ActionApprove) {
		claims, err = h.Service.GetAllClaims(r.Context(), limit, offset)
	} else {
		claims, err = h.Service.GetOwnClaims(r.Context(), prof.ID, limit, offset)
	}
	if err != nil {
		h.Logger.Error("ListClaims: service error", "error", err, "profile_id", prof.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list claims")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"claims": claims,
		"limit":  limit,
		"offset": offset,
	})
}

// ApproveClaim handles PATCH /claims/{id}/approve
func (h *Handler) ApproveClaim(w http.ResponseWriter, r *http.Request) {
	prof, ok := middleware.ProfileFromContext(r.Context())
	if !ok || prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	claimID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	approved, err := h.Service.ApproveClaim(r.Context(), claimID, prof.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveClaim: claim approved", "claim_id", claimID, "approver_id", prof.ID)
	h.WriteJSON(w, http.StatusOK, approved)
}

// RejectClaim handles PATCH /claims/{id}/reject
func (h *Handler) RejectClaim(w http.ResponseWriter, r *http.Request) {
	prof, ok := middleware.ProfileFromContext(r.Context())
	if !ok || prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	claimID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	var dto RejectClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rejected, err := h.Service.RejectClaim(r.Context(), claimID, prof.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RejectClaim: claim rejected", "claim_id", claimID, "approver_id", prof.ID)
	h.WriteJSON(w, http.StatusOK, rejected)
}

func pageParams(r *http.Request) (int, int) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
