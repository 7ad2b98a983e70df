package directory

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danuprasetya/hr-management/internal/transport"
	"github.com/danuprasetya/hr-management/pkg/logger"
)

type ServiceAPI interface {
	ListEmployees(ctx context.Context, query ListQuery) (*ListResponse, error)
	ListDepartments(ctx context.Context) ([]DepartmentSummary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListEmployees handles GET /employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := ListQuery{
		Department: q.Get("department"),
		Search:     q.Get("search"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		query.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		query.Offset = offset
	}

	resp, err := h.Service.ListEmployees(r.Context(), query)
	if err != nil {
		h.Logger.Error("ListEmployees failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// ListDepartments handles GET /departments
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		h.Logger.Error("ListDepartments failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list departments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departments": summaries})
}
