package session

import (
	"context"
	"errors"

	"github.com/danuprasetya/hr-management/internal/identity"
	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/rbac"
)

// State is the session slot's lifecycle state.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateUnverified      State = "authenticated_unverified"
	StateVerified        State = "authenticated_verified"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNotAuthenticated = errors.New("no authenticated principal")
)

// ProfileStore is the external profile store, keyed by principal id. Get
// returns ErrProfileNotFound when no record exists; Set is a whole-record
// upsert — no partial-update primitive is assumed.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*profile.UserProfile, error)
	Set(ctx context.Context, id string, p *profile.UserProfile) error
}

// IdentityProvider is the slice of the identity provider's capabilities the
// session manager consumes. Failures propagate to the caller untouched.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Principal, error)
	CreateAccount(ctx context.Context, email, password string) (*identity.Principal, error)
	SignOut(ctx context.Context) error
	SignInWithFederatedPopup(ctx context.Context) (*identity.Principal, error)
	SendVerificationEmail(ctx context.Context, principalID, returnURL string) error
	Reload(ctx context.Context, principalID string) (*identity.Principal, error)
	OnAuthStateChange(cb identity.AuthStateCallback) func()
}

// SignUpInput carries an explicit signup. Role and Department override the
// profile defaults (employee/engineering) when set.
type SignUpInput struct {
	Email       string           `json:"email"`
	Password    string           `json:"password"`
	DisplayName string           `json:"display_name"`
	Role        *rbac.Role       `json:"role,omitempty"`
	Department  *rbac.Department `json:"department,omitempty"`
}

func (s SignUpInput) Validate() error {
	if s.Email == "" {
		return errors.New("email is required")
	}
	if len(s.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if s.Role != nil && !s.Role.Valid() {
		return errors.New("unknown role")
	}
	if s.Department != nil && !s.Department.Valid() {
		return errors.New("unknown department")
	}
	return nil
}
