package identity_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danuprasetya/hr-management/internal/core/events"
	"github.com/danuprasetya/hr-management/internal/identity"
)

func TestIdentity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Identity Suite")
}

// memoryCredentialRepo is an in-memory credential store.
type memoryCredentialRepo struct {
	mu      sync.Mutex
	byID    map[string]*identity.Credential
	byEmail map[string]*identity.Credential
}

func newMemoryCredentialRepo() *memoryCredentialRepo {
	return &memoryCredentialRepo{
		byID:    make(map[string]*identity.Credential),
		byEmail: make(map[string]*identity.Credential),
	}
}

func (r *memoryCredentialRepo) GetByEmail(ctx context.Context, email string) (*identity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred, ok := r.byEmail[email]
	if !ok {
		return nil, identity.ErrPrincipalNotFound
	}
	cp := *cred
	return &cp, nil
}

func (r *memoryCredentialRepo) GetByID(ctx context.Context, id string) (*identity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred, ok := r.byID[id]
	if !ok {
		return nil, identity.ErrPrincipalNotFound
	}
	cp := *cred
	return &cp, nil
}

func (r *memoryCredentialRepo) Create(ctx context.Context, cred *identity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cred
	r.byID[cred.ID] = &cp
	r.byEmail[cred.Email] = &cp
	return nil
}

func (r *memoryCredentialRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cred, ok := r.byID[id]; ok {
		cred.EmailVerified = verified
	}
	return nil
}

func (r *memoryCredentialRepo) MarkVerificationSent(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cred, ok := r.byID[id]; ok {
		cred.VerificationSentAt = &at
	}
	return nil
}

func (r *memoryCredentialRepo) SetLastSignIn(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cred, ok := r.byID[id]; ok {
		cred.LastSignInAt = &at
	}
	return nil
}

var _ = Describe("LocalProvider", func() {
	var (
		repo     *memoryCredentialRepo
		provider *identity.LocalProvider
		ctx      context.Context
	)

	BeforeEach(func() {
		repo = newMemoryCredentialRepo()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		tokens := identity.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		provider = identity.NewLocalProvider(repo, tokens, events.NewEventBus(lg), lg, 10)
		ctx = context.Background()
	})

	Describe("CreateAccount", func() {
		It("should register and sign the principal in", func() {
			p, err := provider.CreateAccount(ctx, "a@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.ID).ToNot(BeEmpty())
			Expect(p.Email).To(Equal("a@hr.local"))
			Expect(p.EmailVerified).To(BeFalse())
		})

		It("should refuse a duplicate email", func() {
			_, err := provider.CreateAccount(ctx, "dup@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())

			_, err = provider.CreateAccount(ctx, "dup@hr.local", "different456")
			Expect(err).To(MatchError(identity.ErrAccountExists))
		})
	})

	Describe("SignInWithPassword", func() {
		BeforeEach(func() {
			_, err := provider.CreateAccount(ctx, "login@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should authenticate the right password", func() {
			p, err := provider.SignInWithPassword(ctx, "login@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Email).To(Equal("login@hr.local"))
			Expect(p.LastSignInAt).ToNot(BeNil())
		})

		It("should reject a wrong password", func() {
			_, err := provider.SignInWithPassword(ctx, "login@hr.local", "wrong-password")
			Expect(err).To(MatchError(identity.ErrInvalidCredentials))
		})

		It("should reject an unknown email with the same error", func() {
			_, err := provider.SignInWithPassword(ctx, "nobody@hr.local", "password123")
			Expect(err).To(MatchError(identity.ErrInvalidCredentials))
		})
	})

	Describe("OnAuthStateChange", func() {
		It("should deliver the current state immediately on subscription", func() {
			var got []*identity.Principal
			provider.OnAuthStateChange(func(p *identity.Principal) {
				got = append(got, p)
			})
			Expect(got).To(HaveLen(1))
			Expect(got[0]).To(BeNil())
		})

		It("should notify subscribers of sign-in and sign-out in order", func() {
			var got []*identity.Principal
			provider.OnAuthStateChange(func(p *identity.Principal) {
				got = append(got, p)
			})

			p, err := provider.CreateAccount(ctx, "events@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
			Expect(provider.SignOut(ctx)).To(Succeed())

			Expect(got).To(HaveLen(3))
			Expect(got[0]).To(BeNil())
			Expect(got[1].ID).To(Equal(p.ID))
			Expect(got[2]).To(BeNil())
		})

		It("should stop delivering after unsubscribe", func() {
			count := 0
			unsubscribe := provider.OnAuthStateChange(func(p *identity.Principal) {
				count++
			})
			Expect(count).To(Equal(1))

			unsubscribe()
			_, err := provider.CreateAccount(ctx, "gone@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})

	Describe("email verification", func() {
		var principalID string

		BeforeEach(func() {
			p, err := provider.CreateAccount(ctx, "verify@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())
			principalID = p.ID
		})

		It("should record the verification dispatch", func() {
			Expect(provider.SendVerificationEmail(ctx, principalID, "/welcome")).To(Succeed())
			cred, err := repo.GetByID(ctx, principalID)
			Expect(err).ToNot(HaveOccurred())
			Expect(cred.VerificationSentAt).ToNot(BeNil())
		})

		It("should report the verified flag through Reload after confirmation", func() {
			p, err := provider.Reload(ctx, principalID)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.EmailVerified).To(BeFalse())

			Expect(provider.ConfirmEmail(ctx, principalID)).To(Succeed())

			p, err = provider.Reload(ctx, principalID)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.EmailVerified).To(BeTrue())
		})

		It("should emit a fresh auth state when the current principal confirms", func() {
			var last *identity.Principal
			provider.OnAuthStateChange(func(p *identity.Principal) {
				last = p
			})

			Expect(provider.ConfirmEmail(ctx, principalID)).To(Succeed())
			Expect(last).ToNot(BeNil())
			Expect(last.EmailVerified).To(BeTrue())
		})
	})

	Describe("tokens", func() {
		It("should round-trip access token claims", func() {
			p, err := provider.CreateAccount(ctx, "token@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())

			tokens, err := provider.IssueTokens(p)
			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())

			claims, err := provider.ValidateAccessToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.PrincipalID).To(Equal(p.ID))
			Expect(claims.Email).To(Equal("token@hr.local"))
		})

		It("should exchange a refresh token for a new pair", func() {
			p, err := provider.CreateAccount(ctx, "refresh@hr.local", "password123")
			Expect(err).ToNot(HaveOccurred())

			tokens, err := provider.IssueTokens(p)
			Expect(err).ToNot(HaveOccurred())

			fresh, err := provider.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(fresh.AccessToken).ToNot(BeEmpty())

			claims, err := provider.ValidateAccessToken(fresh.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.PrincipalID).To(Equal(p.ID))
		})

		It("should reject garbage tokens", func() {
			_, err := provider.ValidateAccessToken("not-a-token")
			Expect(err).To(HaveOccurred())
		})

		It("should refuse the federated popup flow", func() {
			_, err := provider.SignInWithFederatedPopup(ctx)
			Expect(err).To(MatchError(identity.ErrUnsupported))
		})
	})
})
