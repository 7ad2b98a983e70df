package session_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danuprasetya/hr-management/internal/identity"
	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/rbac"
	"github.com/danuprasetya/hr-management/internal/session"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Suite")
}

// mockProvider drives auth-state changes synchronously, the way the local
// provider delivers them.
type mockProvider struct {
	mu         sync.Mutex
	current    *identity.Principal
	callbacks  []identity.AuthStateCallback
	principals map[string]*identity.Principal

	signInErr  error
	reloadErr  error
	sendErr    error
	sentEmails []string
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		principals: make(map[string]*identity.Principal),
	}
}

func (m *mockProvider) OnAuthStateChange(cb identity.AuthStateCallback) func() {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, cb)
	current := m.current
	m.mu.Unlock()

	cb(current)
	return func() {}
}

func (m *mockProvider) emit(p *identity.Principal) {
	m.mu.Lock()
	m.current = p
	cbs := make([]identity.AuthStateCallback, len(m.callbacks))
	copy(cbs, m.callbacks)
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(p)
	}
}

func (m *mockProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Principal, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	p := m.principals[email]
	if p == nil {
		return nil, identity.ErrInvalidCredentials
	}
	m.emit(p)
	return p, nil
}

func (m *mockProvider) CreateAccount(ctx context.Context, email, password string) (*identity.Principal, error) {
	if _, exists := m.principals[email]; exists {
		return nil, identity.ErrAccountExists
	}
	p := &identity.Principal{
		ID:        "principal-" + email,
		Email:     email,
		CreatedAt: time.Now(),
	}
	m.principals[email] = p
	m.emit(p)
	return p, nil
}

func (m *mockProvider) SignOut(ctx context.Context) error {
	m.emit(nil)
	return nil
}

func (m *mockProvider) SignInWithFederatedPopup(ctx context.Context) (*identity.Principal, error) {
	return nil, identity.ErrUnsupported
}

func (m *mockProvider) SendVerificationEmail(ctx context.Context, principalID, returnURL string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sentEmails = append(m.sentEmails, principalID)
	return nil
}

func (m *mockProvider) Reload(ctx context.Context, principalID string) (*identity.Principal, error) {
	if m.reloadErr != nil {
		return nil, m.reloadErr
	}
	for _, p := range m.principals {
		if p.ID == principalID {
			return p, nil
		}
	}
	return nil, identity.ErrPrincipalNotFound
}

// memoryStore is an in-memory profile store that counts writes.
type memoryStore struct {
	mu       sync.Mutex
	profiles map[string]*profile.UserProfile
	setCalls int
	getErr   error
	setErr   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{profiles: make(map[string]*profile.UserProfile)}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, session.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) Set(ctx context.Context, id string, p *profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.setCalls++
	cp := *p
	s.profiles[id] = &cp
	return nil
}

var _ = Describe("Session Manager", func() {
	var (
		provider *mockProvider
		store    *memoryStore
		manager  *session.Manager
		ctx      context.Context
	)

	BeforeEach(func() {
		provider = newMockProvider()
		store = newMemoryStore()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		manager = session.NewManager(provider, store, lg)
		ctx = context.Background()
	})

	AfterEach(func() {
		manager.Close()
	})

	Describe("startup", func() {
		It("should begin in the loading state", func() {
			Expect(manager.State()).To(Equal(session.StateLoading))
		})

		It("should settle to unauthenticated once the provider reports no principal", func() {
			manager.Start(ctx)
			Expect(manager.State()).To(Equal(session.StateUnauthenticated))
			Expect(manager.Profile()).To(BeNil())
		})
	})

	Describe("first login", func() {
		BeforeEach(func() {
			manager.Start(ctx)
		})

		It("should create exactly one profile with employee defaults", func() {
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:    "new@hr.local",
				Password: "password123",
			})
			Expect(err).ToNot(HaveOccurred())

			prof := manager.Profile()
			Expect(prof).ToNot(BeNil())
			Expect(prof.Role).To(Equal(rbac.RoleEmployee))
			Expect(prof.Department).To(Equal(rbac.DeptEngineering))
			Expect(prof.EmployeeID).ToNot(BeEmpty())
			Expect(store.setCalls).To(Equal(1))
		})

		It("should mark an unverified principal's profile pending verification", func() {
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:    "new@hr.local",
				Password: "password123",
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(manager.State()).To(Equal(session.StateUnverified))
			Expect(manager.Profile().Status).To(Equal(profile.StatusPendingVerification))
		})

		It("should honor explicit signup role and department hints", func() {
			role := rbac.RoleTeamLead
			dept := rbac.DeptFinance
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:       "lead@hr.local",
				Password:    "password123",
				DisplayName: "Lena Lead",
				Role:        &role,
				Department:  &dept,
			})
			Expect(err).ToNot(HaveOccurred())

			prof := manager.Profile()
			Expect(prof.Role).To(Equal(rbac.RoleTeamLead))
			Expect(prof.Department).To(Equal(rbac.DeptFinance))
			Expect(prof.DisplayName).To(Equal("Lena Lead"))
		})

		It("should reject a signup with a short password", func() {
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:    "weak@hr.local",
				Password: "short",
			})
			Expect(err).To(HaveOccurred())
		})

		It("should not create a second profile for a returning principal", func() {
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:    "back@hr.local",
				Password: "password123",
			})
			Expect(err).ToNot(HaveOccurred())
			firstEmployeeID := manager.Profile().EmployeeID

			Expect(manager.SignOut(ctx)).To(Succeed())
			Expect(manager.State()).To(Equal(session.StateUnauthenticated))

			_, err = manager.SignIn(ctx, "back@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
			Expect(manager.Profile().EmployeeID).To(Equal(firstEmployeeID))
			Expect(store.setCalls).To(Equal(1))
		})

		It("should leave the slot untouched when the profile store fails", func() {
			_, err := manager.SignUp(ctx, session.SignUpInput{Email: "flaky@hr.local", Password: "password123"})
			Expect(err).ToNot(HaveOccurred())
			Expect(manager.SignOut(ctx)).To(Succeed())

			store.getErr = errors.New("store down")
			_, err = manager.SignIn(ctx, "flaky@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())

			// the failed load never fabricates a profile or flips the state
			Expect(manager.Profile()).To(BeNil())
			Expect(manager.State()).To(Equal(session.StateUnauthenticated))
		})
	})

	Describe("sign out", func() {
		It("should clear the principal and profile", func() {
			manager.Start(ctx)
			_, err := manager.SignUp(ctx, session.SignUpInput{Email: "out@hr.local", Password: "password123"})
			Expect(err).ToNot(HaveOccurred())
			Expect(manager.Profile()).ToNot(BeNil())

			Expect(manager.SignOut(ctx)).To(Succeed())
			Expect(manager.State()).To(Equal(session.StateUnauthenticated))
			Expect(manager.Profile()).To(BeNil())
			Expect(manager.Principal()).To(BeNil())
		})
	})

	Describe("ReloadIdentity", func() {
		BeforeEach(func() {
			manager.Start(ctx)
			_, err := manager.SignUp(ctx, session.SignUpInput{Email: "verify@hr.local", Password: "password123"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should fail when nobody is signed in", func() {
			Expect(manager.SignOut(ctx)).To(Succeed())
			Expect(manager.ReloadIdentity(ctx)).To(MatchError(session.ErrNotAuthenticated))
		})

		It("should activate the profile once the contact is verified", func() {
			provider.principals["verify@hr.local"].EmailVerified = true

			Expect(manager.ReloadIdentity(ctx)).To(Succeed())
			Expect(manager.State()).To(Equal(session.StateVerified))
			Expect(manager.Profile().Status).To(Equal(profile.StatusActive))
		})

		It("should be idempotent beyond the first activation", func() {
			provider.principals["verify@hr.local"].EmailVerified = true

			Expect(manager.ReloadIdentity(ctx)).To(Succeed())
			writesAfterFirst := store.setCalls

			Expect(manager.ReloadIdentity(ctx)).To(Succeed())
			Expect(manager.ReloadIdentity(ctx)).To(Succeed())
			Expect(store.setCalls).To(Equal(writesAfterFirst))
			Expect(manager.Profile().Status).To(Equal(profile.StatusActive))
		})

		It("should not activate while the contact stays unverified", func() {
			Expect(manager.ReloadIdentity(ctx)).To(Succeed())
			Expect(manager.State()).To(Equal(session.StateUnverified))
			Expect(manager.Profile().Status).To(Equal(profile.StatusPendingVerification))
		})
	})

	Describe("UpdateProfile", func() {
		BeforeEach(func() {
			manager.Start(ctx)
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:       "edit@hr.local",
				Password:    "password123",
				DisplayName: "Before",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should merge set fields and leave the rest alone", func() {
			before := manager.Profile()
			newName := "After"
			phone := "+62-812-0000"

			updated, err := manager.UpdateProfile(ctx, profile.Update{
				DisplayName: &newName,
				Phone:       &phone,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.DisplayName).To(Equal("After"))
			Expect(updated.Phone).ToNot(BeNil())
			Expect(*updated.Phone).To(Equal("+62-812-0000"))

			// untouched fields survive the merge
			Expect(updated.Email).To(Equal(before.Email))
			Expect(updated.Role).To(Equal(before.Role))
			Expect(updated.EmployeeID).To(Equal(before.EmployeeID))
		})

		It("should persist the whole record", func() {
			newName := "Persisted"
			_, err := manager.UpdateProfile(ctx, profile.Update{DisplayName: &newName})
			Expect(err).ToNot(HaveOccurred())

			stored, err := store.Get(ctx, manager.Principal().ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.DisplayName).To(Equal("Persisted"))
		})

		It("should reject an unknown role", func() {
			bad := rbac.Role("warlord")
			_, err := manager.UpdateProfile(ctx, profile.Update{Role: &bad})
			Expect(err).To(HaveOccurred())
		})

		It("should refuse updates with no active profile", func() {
			Expect(manager.SignOut(ctx)).To(Succeed())
			name := "Nobody"
			_, err := manager.UpdateProfile(ctx, profile.Update{DisplayName: &name})
			Expect(err).To(MatchError(session.ErrNotAuthenticated))
		})
	})

	Describe("permission checks", func() {
		It("should deny everything with no active profile", func() {
			manager.Start(ctx)
			Expect(manager.CheckPermission(rbac.ModuleDashboard, rbac.ActionView)).To(BeFalse())
			Expect(manager.CheckModuleAccess(rbac.ModuleTasks)).To(BeFalse())
			Expect(manager.Evaluate(rbac.EmployeeTier())).To(BeFalse())
		})

		It("should bind the resolver to the active profile's role", func() {
			manager.Start(ctx)
			role := rbac.RoleHRManager
			_, err := manager.SignUp(ctx, session.SignUpInput{
				Email:    "hr@hr.local",
				Password: "password123",
				Role:     &role,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(manager.CheckPermission(rbac.ModuleSalary, rbac.ActionManage)).To(BeTrue())
			Expect(manager.CheckPermission(rbac.ModuleSettings, rbac.ActionView)).To(BeFalse())
			Expect(manager.CheckModuleAccess(rbac.ModuleEmployees)).To(BeTrue())
			Expect(manager.Evaluate(rbac.HRTier())).To(BeTrue())
			Expect(manager.Evaluate(rbac.AdminTier())).To(BeFalse())
		})
	})

	Describe("federated sign-in", func() {
		It("should surface the provider's unsupported error", func() {
			manager.Start(ctx)
			_, err := manager.SignInWithSSO(ctx)
			Expect(err).To(MatchError(identity.ErrUnsupported))
		})
	})

	Describe("verification email", func() {
		It("should require an authenticated principal", func() {
			manager.Start(ctx)
			Expect(manager.SendVerificationEmail(ctx, "/welcome")).To(MatchError(session.ErrNotAuthenticated))
		})

		It("should pass through to the provider for the current principal", func() {
			manager.Start(ctx)
			p, err := manager.SignUp(ctx, session.SignUpInput{Email: "mail@hr.local", Password: "password123"})
			Expect(err).ToNot(HaveOccurred())

			Expect(manager.SendVerificationEmail(ctx, "/welcome")).To(Succeed())
			Expect(provider.sentEmails).To(ConsistOf(p.ID))
		})
	})
})
