package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danuprasetya/hr-management/internal/identity"
	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/transport"
	"github.com/danuprasetya/hr-management/pkg/logger"
)

// TokenIssuer mints and refreshes bearer token pairs. The local provider
// satisfies it; a federated provider would return its own tokens here.
type TokenIssuer interface {
	IssueTokens(p *identity.Principal) (identity.AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (identity.AuthTokens, error)
}

// Handler exposes the session lifecycle over HTTP: sign-in, sign-up,
// sign-out, token refresh, verification, and the caller's own profile.
type Handler struct {
	*transport.BaseHandler
	Manager *Manager
	Tokens  TokenIssuer
}

func NewHandler(manager *Manager, tokens TokenIssuer) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Manager:     manager,
		Tokens:      tokens,
	}
}

type authResponse struct {
	Principal *identity.Principal  `json:"principal"`
	Tokens    identity.AuthTokens  `json:"tokens"`
	State     State                `json:"state"`
	Profile   *profile.UserProfile `json:"profile,omitempty"`
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Manager.SignIn(r.Context(), dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			h.WriteError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Logger.Error("Login: sign-in failed", "error", err, "email", dto.Email)
		h.WriteError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	tokens, err := h.Tokens.IssueTokens(p)
	if err != nil {
		h.Logger.Error("Login: token issuance failed", "error", err, "principal_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	h.WriteJSON(w, http.StatusOK, authResponse{
		Principal: p,
		Tokens:    tokens,
		State:     h.Manager.State(),
		Profile:   h.Manager.Profile(),
	})
}

// SignUp handles POST /auth/signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Manager.SignUp(r.Context(), input)
	if err != nil {
		if errors.Is(err, identity.ErrAccountExists) {
			h.WriteError(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.Logger.Error("SignUp: failed", "error", err, "email", input.Email)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Tokens.IssueTokens(p)
	if err != nil {
		h.Logger.Error("SignUp: token issuance failed", "error", err, "principal_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	h.WriteJSON(w, http.StatusCreated, authResponse{
		Principal: p,
		Tokens:    tokens,
		State:     h.Manager.State(),
		Profile:   h.Manager.Profile(),
	})
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.SignOut(r.Context()); err != nil {
		h.Logger.Error("Logout: sign-out failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "sign-out failed")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// RefreshToken handles POST /auth/refresh
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Tokens.RefreshTokens(r.Context(), dto.RefreshToken)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// LoginWithSSO handles POST /auth/sso. The local provider does not implement
// the federated popup flow, so this surfaces as 501 until one does.
func (h *Handler) LoginWithSSO(w http.ResponseWriter, r *http.Request) {
	p, err := h.Manager.SignInWithSSO(r.Context())
	if err != nil {
		if errors.Is(err, identity.ErrUnsupported) {
			h.WriteError(w, http.StatusNotImplemented, "federated sign-in is not supported by this provider")
			return
		}
		h.Logger.Error("LoginWithSSO: failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "federated sign-in failed")
		return
	}

	tokens, err := h.Tokens.IssueTokens(p)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	h.WriteJSON(w, http.StatusOK, authResponse{
		Principal: p,
		Tokens:    tokens,
		State:     h.Manager.State(),
		Profile:   h.Manager.Profile(),
	})
}

// SendVerificationEmail handles POST /auth/verification-email
func (h *Handler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var dto VerificationEmailDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Manager.SendVerificationEmail(r.Context(), dto.ReturnURL); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			h.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		h.Logger.Error("SendVerificationEmail: failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to send verification email")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// ReloadIdentity handles POST /auth/reload, re-checking verification state.
func (h *Handler) ReloadIdentity(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.ReloadIdentity(r.Context()); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			h.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		h.Logger.Error("ReloadIdentity: failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to reload identity")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"state":   h.Manager.State(),
		"profile": h.Manager.Profile(),
	})
}

// GetSession handles GET /session, reporting the slot's current state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"state":     h.Manager.State(),
		"principal": h.Manager.Principal(),
		"profile":   h.Manager.Profile(),
	})
}

// GetProfile handles GET /profiles/me
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	prof := h.Manager.Profile()
	if prof == nil {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	h.WriteJSON(w, http.StatusOK, prof)
}

// UpdateProfile handles PATCH /profiles/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update profile.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Manager.UpdateProfile(r.Context(), update)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			h.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		h.Logger.Error("UpdateProfile: failed", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}
