package announcement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danuprasetya/hr-management/internal/transport"
	"github.com/danuprasetya/hr-management/internal/transport/middleware"
	"github.com/danuprasetya/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetActiveAnnouncements(ctx context.Context) ([]*Announcement, error)
	Publish(ctx context.Context, authorID string, dto CreateAnnouncementDTO) (*Announcement, error)
	Edit(ctx context.Context, id int64, dto UpdateAnnouncementDTO) (*Announcement, error)
	Retire(ctx context.Context, id int64) error
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

// ListAnnouncements handles GET /announcements
func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.Service.GetActiveAnnouncements(r.Context())
	if err != nil {
		h.Logger.Error("ListAnnouncements: failed to get announcements", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get announcements")
		return
	}

	h.WriteJSON(w, http.StatusOK, AnnouncementsResponse{Announcements: announcements})
}

// PublishAnnouncement handles POST /announcements
func (h *Handler) PublishAnnouncement(w http.ResponseWriter, r *http.Request) {
	prof, ok := middleware.ProfileFromContext(r.Context())
	if !ok || prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAnnouncementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.Publish(r.Context(), prof.ID, dto)
	if err != nil {
		h.Logger.Error("PublishAnnouncement: service error", "error", err, "author_id", prof.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to publish announcement")
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// EditAnnouncement handles PATCH /announcements/{id}
func (h *Handler) EditAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid announcement ID")
		return
	}

	var dto UpdateAnnouncementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.Edit(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, ErrAnnouncementNotFound) {
			h.WriteError(w, http.StatusNotFound, "announcement not found")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to update announcement")
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// RetireAnnouncement handles DELETE /announcements/{id}
func (h *Handler) RetireAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid announcement ID")
		return
	}

	if err := h.Service.Retire(r.Context(), id); err != nil {
		if errors.Is(err, ErrAnnouncementNotFound) {
			h.WriteError(w, http.StatusNotFound, "announcement not found")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to retire announcement")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "retired"})
}
