package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danuprasetya/hr-management/internal/core/events"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository is the storage contract for the local provider's
// login records. Lookups return ErrPrincipalNotFound when absent.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	GetByID(ctx context.Context, id string) (*Credential, error)
	Create(ctx context.Context, cred *Credential) error
	SetVerified(ctx context.Context, id string, verified bool) error
	MarkVerificationSent(ctx context.Context, id string, at time.Time) error
	SetLastSignIn(ctx context.Context, id string, at time.Time) error
}

type subscriber struct {
	id int
	cb AuthStateCallback
}

// LocalProvider is a credential-backed identity provider: bcrypt password
// auth, JWT bearer tokens, and synchronous auth-state-change notifications.
// A federated provider can replace it behind the same session-facing
// contract.
type LocalProvider struct {
	repo       CredentialRepository
	tokens     TokenGenerator
	bus        *events.EventBus
	logger     *slog.Logger
	bcryptCost int

	mu          sync.Mutex
	current     *Principal
	subscribers []subscriber
	nextSubID   int

	// notifyMu serializes deliveries so subscribers observe auth-state
	// changes one at a time in arrival order.
	notifyMu sync.Mutex
}

func NewLocalProvider(repo CredentialRepository, tokens TokenGenerator, bus *events.EventBus, logger *slog.Logger, bcryptCost int) *LocalProvider {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &LocalProvider{
		repo:       repo,
		tokens:     tokens,
		bus:        bus,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// OnAuthStateChange registers a callback and returns its unsubscribe
// function. The current state is delivered immediately on subscription.
func (p *LocalProvider) OnAuthStateChange(cb AuthStateCallback) func() {
	p.mu.Lock()
	p.nextSubID++
	id := p.nextSubID
	p.subscribers = append(p.subscribers, subscriber{id: id, cb: cb})
	current := p.current
	p.mu.Unlock()

	p.notifyMu.Lock()
	cb(current)
	p.notifyMu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subscribers {
			if s.id == id {
				p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (p *LocalProvider) notify(ctx context.Context, principal *Principal) {
	p.mu.Lock()
	p.current = principal
	subs := make([]subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	for _, s := range subs {
		s.cb(principal)
	}

	if p.bus != nil {
		if principal != nil {
			_ = p.bus.Publish(ctx, events.NewAuthStateChangedEvent(principal.ID, principal.Email, principal.EmailVerified, true))
		} else {
			_ = p.bus.Publish(ctx, events.NewAuthStateChangedEvent("", "", false, false))
		}
	}
}

// SignInWithPassword authenticates a credential and emits the new auth state.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*Principal, error) {
	cred, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := p.repo.SetLastSignIn(ctx, cred.ID, now); err != nil {
		p.logger.Warn("failed to record last sign-in", "principal_id", cred.ID, "error", err)
	}
	cred.LastSignInAt = &now

	principal := cred.Principal()
	p.notify(ctx, principal)

	p.logger.Info("principal signed in", "principal_id", principal.ID, "email", principal.Email)
	return principal, nil
}

// CreateAccount registers a new credential and signs the principal in.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string) (*Principal, error) {
	if _, err := p.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, ErrPrincipalNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return nil, err
	}

	cred := &Credential{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := p.repo.Create(ctx, cred); err != nil {
		return nil, err
	}

	if p.bus != nil {
		_ = p.bus.Publish(ctx, events.NewAccountCreatedEvent(cred.ID, cred.Email))
	}

	principal := cred.Principal()
	p.notify(ctx, principal)

	p.logger.Info("account created", "principal_id", principal.ID, "email", principal.Email)
	return principal, nil
}

// SignOut clears the current principal and emits the signed-out state.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.notify(ctx, nil)
	return nil
}

// SignInWithFederatedPopup is part of the provider contract so a federated
// implementation can slot in; the local provider does not support it.
func (p *LocalProvider) SignInWithFederatedPopup(ctx context.Context) (*Principal, error) {
	return nil, ErrUnsupported
}

// SendVerificationEmail records the dispatch. Actual delivery and the
// verification click-through belong to external tooling.
func (p *LocalProvider) SendVerificationEmail(ctx context.Context, principalID, returnURL string) error {
	cred, err := p.repo.GetByID(ctx, principalID)
	if err != nil {
		return err
	}

	if err := p.repo.MarkVerificationSent(ctx, cred.ID, time.Now()); err != nil {
		return err
	}

	if p.bus != nil {
		_ = p.bus.Publish(ctx, events.NewVerificationEmailSentEvent(cred.ID, cred.Email, returnURL))
	}

	p.logger.Info("verification email dispatched", "principal_id", cred.ID, "return_url", returnURL)
	return nil
}

// Reload re-fetches the principal's current state from the credential store.
func (p *LocalProvider) Reload(ctx context.Context, principalID string) (*Principal, error) {
	cred, err := p.repo.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	principal := cred.Principal()

	p.mu.Lock()
	if p.current != nil && p.current.ID == principal.ID {
		p.current = principal
	}
	p.mu.Unlock()

	return principal, nil
}

// ConfirmEmail marks a credential as verified, standing in for the external
// verification click-through in local setups. Emits a fresh auth state when
// the confirmed principal is the current one.
func (p *LocalProvider) ConfirmEmail(ctx context.Context, principalID string) error {
	if err := p.repo.SetVerified(ctx, principalID, true); err != nil {
		return err
	}

	p.mu.Lock()
	isCurrent := p.current != nil && p.current.ID == principalID
	p.mu.Unlock()

	if isCurrent {
		cred, err := p.repo.GetByID(ctx, principalID)
		if err != nil {
			return err
		}
		p.notify(ctx, cred.Principal())
	}
	return nil
}

// IssueTokens creates an access/refresh token pair for a principal.
func (p *LocalProvider) IssueTokens(principal *Principal) (AuthTokens, error) {
	access, err := p.tokens.GenerateAccessToken(principal.ID, principal.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	refresh, err := p.tokens.GenerateRefreshToken(principal.ID, principal.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshTokens validates a refresh token and issues a new pair.
func (p *LocalProvider) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := p.tokens.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	cred, err := p.repo.GetByID(ctx, claims.PrincipalID)
	if err != nil {
		return AuthTokens{}, err
	}

	return p.IssueTokens(cred.Principal())
}

// ValidateAccessToken validates a bearer token and returns its claims.
func (p *LocalProvider) ValidateAccessToken(tokenString string) (*Claims, error) {
	return p.tokens.ValidateToken(tokenString)
}
