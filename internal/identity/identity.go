package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity as reported by the provider.
type Principal struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	LastSignInAt  *time.Time `json:"last_sign_in_at,omitempty"`
}

// AuthStateCallback receives the new principal on every auth-state change,
// nil when the session ended.
type AuthStateCallback func(p *Principal)

// TokenGenerator creates and validates the provider's bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(principalID, email string) (token string, err error)
	GenerateRefreshToken(principalID, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents JWT token claims.
type Claims struct {
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Credential is the stored login record backing the local provider.
type Credential struct {
	ID                 string
	Email              string
	DisplayName        string
	PasswordHash       string
	EmailVerified      bool
	VerificationSentAt *time.Time
	CreatedAt          time.Time
	LastSignInAt       *time.Time
}

func (c *Credential) Principal() *Principal {
	return &Principal{
		ID:            c.ID,
		Email:         c.Email,
		DisplayName:   c.DisplayName,
		EmailVerified: c.EmailVerified,
		CreatedAt:     c.CreatedAt,
		LastSignInAt:  c.LastSignInAt,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnsupported        = errors.New("operation not supported by this provider")
)
