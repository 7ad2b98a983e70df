package middleware

import (
	"log/slog"
	"net/http"

	"github.com/danuprasetya/hr-management/internal/rbac"
)

// RequireGate creates a middleware that evaluates an access gate against the
// caller's role. Requests without a profile are denied outright, mirroring
// hidden-by-default UI gating.
func RequireGate(gate rbac.AccessGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prof, ok := ProfileFromContext(r.Context())
			if !ok || prof == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !gate.AllowsRole(prof.Role) {
				slog.Warn("access denied by gate",
					"principal_id", prof.ID,
					"role", prof.Role,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a route on a single module/action pair for the
// caller's role.
func RequirePermission(module string, action rbac.Action) func(http.Handler) http.Handler {
	return RequireGate(rbac.RequirePermission(module, action))
}
