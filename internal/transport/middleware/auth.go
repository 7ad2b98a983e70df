package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danuprasetya/hr-management/internal"
	"github.com/danuprasetya/hr-management/internal/identity"
	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/session"
	"github.com/danuprasetya/hr-management/pkg/logger"
)

type contextKey string

const profileContextKey contextKey = "profile"

// TokenValidator is the slice of the identity provider the auth middleware
// needs.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*identity.Claims, error)
}

// Authenticator resolves a bearer token to the caller's profile and stashes
// it in the request context.
type Authenticator struct {
	tokens   TokenValidator
	profiles session.ProfileStore
}

func NewAuthenticator(tokens TokenValidator, profiles session.ProfileStore) *Authenticator {
	return &Authenticator{tokens: tokens, profiles: profiles}
}

// Middleware rejects requests without a valid access token. The resolved
// profile rides the context for gate checks and handlers downstream.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := a.tokens.ValidateAccessToken(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		prof, err := a.profiles.Get(r.Context(), claims.PrincipalID)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, prof)
		ctx = internal.ContextWithPrincipalID(ctx, claims.PrincipalID)
		ctx = logger.With(ctx, "principal_id", claims.PrincipalID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// ProfileFromContext returns the authenticated caller's profile.
func ProfileFromContext(ctx context.Context) (*profile.UserProfile, bool) {
	prof, ok := ctx.Value(profileContextKey).(*profile.UserProfile)
	return prof, ok
}

