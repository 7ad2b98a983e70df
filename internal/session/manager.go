package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danuprasetya/hr-management/internal/identity"
	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/rbac"
)

// Manager owns the authenticated-identity lifecycle for a single session
// slot: it tracks the current principal, loads or creates the matching
// profile, and binds the resolver to the active profile's role.
//
// The manager is the only writer of the profile slot; concurrent readers see
// whole replacement profiles, never partial mutation.
type Manager struct {
	provider IdentityProvider
	store    ProfileStore
	logger   *slog.Logger

	mu        sync.RWMutex
	state     State
	principal *identity.Principal
	profile   *profile.UserProfile

	// signup hints keyed by email, consumed by the auth-state handler when
	// the freshly created principal arrives
	pendingSignup map[string]SignUpInput

	unsubscribe func()
}

func NewManager(provider IdentityProvider, store ProfileStore, logger *slog.Logger) *Manager {
	return &Manager{
		provider:      provider,
		store:         store,
		logger:        logger,
		state:         StateLoading,
		pendingSignup: make(map[string]SignUpInput),
	}
}

// Start subscribes to the provider's auth-state notifications. The
// subscription lives until Close.
func (m *Manager) Start(ctx context.Context) {
	m.unsubscribe = m.provider.OnAuthStateChange(func(p *identity.Principal) {
		m.handleAuthState(ctx, p)
	})
}

// Close releases the auth-state subscription.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// handleAuthState processes one provider event. Events arrive one at a time
// in order; an event landing while a previous profile load is in flight is
// not cancelled — both complete and the last write to the slot wins.
func (m *Manager) handleAuthState(ctx context.Context, p *identity.Principal) {
	if p == nil {
		m.mu.Lock()
		m.principal = nil
		m.profile = nil
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.logger.Info("session cleared")
		return
	}

	prof, err := m.loadOrCreateProfile(ctx, p)
	if err != nil {
		// leave the slot at its prior state; never fabricate a profile
		m.logger.Error("profile load failed", "principal_id", p.ID, "error", err)
		return
	}

	m.mu.Lock()
	m.principal = p
	m.profile = prof
	m.state = stateFor(p)
	m.mu.Unlock()

	m.logger.Info("session established",
		"principal_id", p.ID,
		"role", prof.Role,
		"department", prof.Department,
		"verified", p.EmailVerified)
}

func stateFor(p *identity.Principal) State {
	if p.EmailVerified {
		return StateVerified
	}
	return StateUnverified
}

// loadOrCreateProfile fetches the profile for a principal, synthesizing and
// persisting a new one on first login. Creation is guarded by the existence
// check only (read-then-write, not transactional).
func (m *Manager) loadOrCreateProfile(ctx context.Context, p *identity.Principal) (*profile.UserProfile, error) {
	existing, err := m.store.Get(ctx, p.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	role := rbac.RoleEmployee
	dept := rbac.DeptEngineering
	displayName := p.DisplayName

	m.mu.Lock()
	if hints, ok := m.pendingSignup[p.Email]; ok {
		delete(m.pendingSignup, p.Email)
		if hints.Role != nil {
			role = *hints.Role
		}
		if hints.Department != nil {
			dept = *hints.Department
		}
		if hints.DisplayName != "" {
			displayName = hints.DisplayName
		}
	}
	m.mu.Unlock()

	created := profile.New(p.ID, p.Email, displayName, role, dept, p.EmailVerified)
	if err := m.store.Set(ctx, created.ID, created); err != nil {
		return nil, err
	}

	m.logger.Info("profile created",
		"principal_id", p.ID,
		"employee_id", created.EmployeeID,
		"role", role,
		"department", dept,
		"status", created.Status)
	return created, nil
}

// SignIn authenticates with the provider. Provider failures propagate.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*identity.Principal, error) {
	return m.provider.SignInWithPassword(ctx, email, password)
}

// SignUp registers an account. The role/department hints are picked up by
// the auth-state handler when the new principal's profile is synthesized.
func (m *Manager) SignUp(ctx context.Context, input SignUpInput) (*identity.Principal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.pendingSignup[input.Email] = input
	m.mu.Unlock()

	p, err := m.provider.CreateAccount(ctx, input.Email, input.Password)
	if err != nil {
		m.mu.Lock()
		delete(m.pendingSignup, input.Email)
		m.mu.Unlock()
		return nil, err
	}
	return p, nil
}

// SignOut ends the provider session; the auth-state handler clears the slot.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.provider.SignOut(ctx)
}

// SignInWithSSO runs the provider's federated popup flow.
func (m *Manager) SignInWithSSO(ctx context.Context) (*identity.Principal, error) {
	return m.provider.SignInWithFederatedPopup(ctx)
}

// SendVerificationEmail asks the provider to dispatch a verification email
// for the current principal.
func (m *Manager) SendVerificationEmail(ctx context.Context, returnURL string) error {
	m.mu.RLock()
	p := m.principal
	m.mu.RUnlock()

	if p == nil {
		return ErrNotAuthenticated
	}
	return m.provider.SendVerificationEmail(ctx, p.ID, returnURL)
}

// ReloadIdentity re-fetches the principal's verification state. When the
// contact became verified since the last look, the stored profile moves to
// active — exactly once; calling again is a no-op beyond reconfirming state.
func (m *Manager) ReloadIdentity(ctx context.Context) error {
	m.mu.RLock()
	current := m.principal
	prof := m.profile
	m.mu.RUnlock()

	if current == nil {
		return ErrNotAuthenticated
	}

	p, err := m.provider.Reload(ctx, current.ID)
	if err != nil {
		return err
	}

	if p.EmailVerified && prof != nil && prof.Status == profile.StatusPendingVerification {
		updated := *prof
		updated.Status = profile.StatusActive
		updated.UpdatedAt = time.Now()
		if err := m.store.Set(ctx, updated.ID, &updated); err != nil {
			return err
		}
		prof = &updated
		m.logger.Info("profile activated", "principal_id", p.ID)
	}

	m.mu.Lock()
	m.principal = p
	m.profile = prof
	m.state = stateFor(p)
	m.mu.Unlock()

	return nil
}

// UpdateProfile merges the set fields over the in-memory profile and writes
// the full record back. Concurrent updates can clobber each other's fields;
// that race is accepted, not defended against.
func (m *Manager) UpdateProfile(ctx context.Context, update profile.Update) (*profile.UserProfile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	prof := m.profile
	m.mu.RUnlock()

	if prof == nil {
		return nil, ErrNotAuthenticated
	}

	merged := prof.Merged(update)
	if err := m.store.Set(ctx, merged.ID, &merged); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.profile = &merged
	m.mu.Unlock()

	return &merged, nil
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Profile returns the active profile, nil when unauthenticated.
func (m *Manager) Profile() *profile.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// Principal returns the current principal, nil when unauthenticated.
func (m *Manager) Principal() *identity.Principal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.principal
}

// CheckPermission binds the resolver to the active profile's role. Denies
// when no profile is active.
func (m *Manager) CheckPermission(module string, action rbac.Action) bool {
	m.mu.RLock()
	prof := m.profile
	m.mu.RUnlock()

	if prof == nil {
		return false
	}
	return rbac.HasPermission(prof.Role, module, action)
}

// CheckModuleAccess reports module visibility for the active profile.
func (m *Manager) CheckModuleAccess(module string) bool {
	return m.CheckPermission(module, rbac.ActionView)
}

// Evaluate runs an access gate against the active profile. No profile means
// deny, mirroring hidden-by-default UI gating.
func (m *Manager) Evaluate(gate rbac.AccessGate) bool {
	m.mu.RLock()
	prof := m.profile
	m.mu.RUnlock()

	if prof == nil {
		return false
	}
	return gate.AllowsRole(prof.Role)
}
