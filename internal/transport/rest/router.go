package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danuprasetya/hr-management/internal/announcement"
	"github.com/danuprasetya/hr-management/internal/claim"
	"github.com/danuprasetya/hr-management/internal/directory"
	"github.com/danuprasetya/hr-management/internal/rbac"
	"github.com/danuprasetya/hr-management/internal/session"
	"github.com/danuprasetya/hr-management/internal/transport/middleware"
	"github.com/danuprasetya/hr-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires every HTTP surface onto the router. Route-level
// gates mirror the role catalog: a request that would fail CheckPermission
// never reaches its handler.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authn *middleware.Authenticator,
	sessionHandler *session.Handler,
	directoryHandler *directory.Handler,
	claimHandler *claim.Handler,
	announcementHandler *announcement.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", sessionHandler.Login)
			sr.Post("/signup", sessionHandler.SignUp)
			sr.Post("/logout", sessionHandler.Logout)
			sr.Post("/refresh", sessionHandler.RefreshToken)
			sr.Post("/sso", sessionHandler.LoginWithSSO)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authn.Middleware)

			pr.Get("/session", sessionHandler.GetSession)
			pr.Post("/auth/verification-email", sessionHandler.SendVerificationEmail)
			pr.Post("/auth/reload", sessionHandler.ReloadIdentity)

			// Current profile
			pr.Get("/profiles/me", sessionHandler.GetProfile)
			pr.Patch("/profiles/me", sessionHandler.UpdateProfile)

			// Employee directory
			pr.Group(func(dr chi.Router) {
				dr.Use(middleware.RequirePermission(rbac.ModuleEmployees, rbac.ActionView))
				dr.Get("/employees", directoryHandler.ListEmployees)
				dr.Get("/departments", directoryHandler.ListDepartments)
			})

			// Claim routes
			pr.Route("/claims", func(cr chi.Router) {
				cr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequirePermission(rbac.ModuleClaims, rbac.ActionView))
					vr.Get("/", claimHandler.ListClaims)
					vr.Get("/{id}", claimHandler.GetClaim)
				})

				cr.Group(func(sr chi.Router) {
					sr.Use(middleware.RequirePermission(rbac.ModuleClaims, rbac.ActionCreate))
					sr.Post("/", claimHandler.SubmitClaim)
				})

				cr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequirePermission(rbac.ModuleClaims, rbac.ActionApprove))
					mr.Patch("/{id}/approve", claimHandler.ApproveClaim)
					mr.Patch("/{id}/reject", claimHandler.RejectClaim)
				})
			})

			// Announcement routes
			pr.Route("/announcements", func(ar chi.Router) {
				ar.Group(func(vr chi.Router) {
					vr.Use(middleware.RequirePermission(rbac.ModuleAnnouncements, rbac.ActionView))
					vr.Get("/", announcementHandler.ListAnnouncements)
				})

				ar.Group(func(wr chi.Router) {
					wr.Use(middleware.RequirePermission(rbac.ModuleAnnouncements, rbac.ActionCreate))
					wr.Post("/", announcementHandler.PublishAnnouncement)
				})

				ar.Group(func(er chi.Router) {
					er.Use(middleware.RequirePermission(rbac.ModuleAnnouncements, rbac.ActionEdit))
					er.Patch("/{id}", announcementHandler.EditAnnouncement)
				})

				ar.Group(func(dr chi.Router) {
					dr.Use(middleware.RequireGate(rbac.AdminTier()))
					dr.Delete("/{id}", announcementHandler.RetireAnnouncement)
				})
			})
		})
	})
}
