package claim_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danuprasetya/hr-management/internal"
	"github.com/danuprasetya/hr-management/internal/claim"
)

func TestClaim(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Claim Suite")
}

// Mock repository for testing
type mockClaimRepository struct {
	claims      map[int64]*claim.Claim
	byProfile   map[string][]*claim.Claim
	all         []*claim.Claim
	createError error
	getError    error
	updateError error
	nextID      int64
}

func newMockClaimRepository() *mockClaimRepository {
	return &mockClaimRepository{
		claims:    make(map[int64]*claim.Claim),
		byProfile: make(map[string][]*claim.Claim),
		nextID:    1,
	}
}

func (m *mockClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	m.claims[c.ID] = c
	m.byProfile[c.ProfileID] = append(m.byProfile[c.ProfileID], c)
	m.all = append(m.all, c)
	return nil
}

func (m *mockClaimRepository) GetByID(ctx context.Context, id int64) (*claim.Claim, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	c, ok := m.claims[id]
	if !ok {
		return nil, internal.ErrClaimNotFound
	}
	return c, nil
}

func (m *mockClaimRepository) GetByProfileID(ctx context.Context, profileID string, limit, offset int) ([]*claim.Claim, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return page(m.byProfile[profileID], limit, offset), nil
}

func (m *mockClaimRepository) GetAll(ctx context.Context, limit, offset int) ([]*claim.Claim, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return page(m.all, limit, offset), nil
}

func (m *mockClaimRepository) UpdateStatus(ctx context.Context, c *claim.Claim) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.claims[c.ID] = c
	return nil
}

func page(claims []*claim.Claim, limit, offset int) []*claim.Claim {
	start := offset
	end := offset + limit
	if start >= len(claims) {
		return []*claim.Claim{}
	}
	if end > len(claims) {
		end = len(claims)
	}
	return claims[start:end]
}

var _ = Describe("ClaimService", func() {
	var (
		service *claim.Service
		repo    *mockClaimRepository
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockClaimRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = claim.NewService(repo, lg)
		ctx = context.Background()
	})

	Describe("SubmitClaim", func() {
		Context("when submitting a small claim", func() {
			It("should auto-approve below the threshold", func() {
				result, err := service.SubmitClaim(ctx, "profile-1", claim.CreateClaimDTO{
					Amount:      25000,
					Description: "Team lunch",
					Category:    "meals",
					ClaimDate:   time.Now().Add(-24 * time.Hour),
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(claim.StatusApproved))
				Expect(result.ProcessedAt).ToNot(BeNil())
				Expect(result.ProcessedBy).ToNot(BeNil())
				Expect(*result.ProcessedBy).To(Equal("system"))
			})
		})

		Context("when submitting a large claim", func() {
			It("should queue it for approval", func() {
				result, err := service.SubmitClaim(ctx, "profile-1", claim.CreateClaimDTO{
					Amount:      2500000,
					Description: "Conference travel",
					Category:    "travel",
					ClaimDate:   time.Now().Add(-24 * time.Hour),
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(claim.StatusPendingApproval))
				Expect(result.ProcessedAt).To(BeNil())
			})
		})

		Context("validation", func() {
			It("should reject a non-positive amount", func() {
				_, err := service.SubmitClaim(ctx, "profile-1", claim.CreateClaimDTO{
					Amount:      0,
					Description: "Nothing",
					Category:    "other",
					ClaimDate:   time.Now(),
				})
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown category", func() {
				_, err := service.SubmitClaim(ctx, "profile-1", claim.CreateClaimDTO{
					Amount:      50000,
					Description: "Mystery",
					Category:    "yacht",
					ClaimDate:   time.Now().Add(-time.Hour),
				})
				Expect(err).To(HaveOccurred())
			})

			It("should reject a future claim date", func() {
				_, err := service.SubmitClaim(ctx, "profile-1", claim.CreateClaimDTO{
					Amount:      50000,
					Description: "Time travel",
					Category:    "travel",
					ClaimDate:   time.Now().Add(48 * time.Hour),
				})
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("GetClaimByID", func() {
		var submitted *claim.Claim

		BeforeEach(func() {
			var err error
			submitted, err = service.SubmitClaim(ctx, "owner", claim.CreateClaimDTO{
				Amount:      500000,
				Description: "Monitor",
				Category:    "equipment",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return the claim to its owner", func() {
			got, err := service.GetClaimByID(ctx, submitted.ID, "owner", false)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(submitted.ID))
		})

		It("should hide the claim from other non-approvers", func() {
			_, err := service.GetClaimByID(ctx, submitted.ID, "someone-else", false)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})

		It("should show the claim to approvers", func() {
			got, err := service.GetClaimByID(ctx, submitted.ID, "manager", true)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(submitted.ID))
		})

		It("should report a missing claim", func() {
			_, err := service.GetClaimByID(ctx, 9999, "owner", false)
			Expect(err).To(MatchError(internal.ErrClaimNotFound))
		})
	})

	Describe("ApproveClaim", func() {
		It("should approve a pending claim", func() {
			submitted, err := service.SubmitClaim(ctx, "owner", claim.CreateClaimDTO{
				Amount:      900000,
				Description: "Training course",
				Category:    "training",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())

			approved, err := service.ApproveClaim(ctx, submitted.ID, "manager-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(approved.Status).To(Equal(claim.StatusApproved))
			Expect(*approved.ProcessedBy).To(Equal("manager-1"))
		})

		It("should refuse to approve twice", func() {
			submitted, err := service.SubmitClaim(ctx, "owner", claim.CreateClaimDTO{
				Amount:      900000,
				Description: "Training course",
				Category:    "training",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ApproveClaim(ctx, submitted.ID, "manager-1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ApproveClaim(ctx, submitted.ID, "manager-2")
			Expect(err).To(MatchError(internal.ErrInvalidClaimStatus))
		})

		It("should refuse to approve an auto-approved claim again", func() {
			submitted, err := service.SubmitClaim(ctx, "owner", claim.CreateClaimDTO{
				Amount:      10000,
				Description: "Stationery",
				Category:    "other",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(submitted.Status).To(Equal(claim.StatusApproved))

			_, err = service.ApproveClaim(ctx, submitted.ID, "manager-1")
			Expect(err).To(MatchError(internal.ErrInvalidClaimStatus))
		})
	})

	Describe("RejectClaim", func() {
		It("should reject a pending claim with a reason", func() {
			submitted, err := service.SubmitClaim(ctx, "owner", claim.CreateClaimDTO{
				Amount:      700000,
				Description: "Hotel",
				Category:    "travel",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())

			rejected, err := service.RejectClaim(ctx, submitted.ID, "manager-1", claim.RejectClaimDTO{
				Reason: "missing receipt",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(rejected.Status).To(Equal(claim.StatusRejected))
			Expect(*rejected.RejectionReason).To(Equal("missing receipt"))
		})

		It("should demand a reason", func() {
			submitted, err := service.SubmitClaim(ctx, "owner", claim.CreateClaimDTO{
				Amount:      700000,
				Description: "Hotel",
				Category:    "travel",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RejectClaim(ctx, submitted.ID, "manager-1", claim.RejectClaimDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				_, err := service.SubmitClaim(ctx, "alice", claim.CreateClaimDTO{
					Amount:      150000,
					Description: "Alice claim",
					Category:    "other",
					ClaimDate:   time.Now().Add(-time.Hour),
				})
				Expect(err).ToNot(HaveOccurred())
			}
			_, err := service.SubmitClaim(ctx, "bob", claim.CreateClaimDTO{
				Amount:      150000,
				Description: "Bob claim",
				Category:    "other",
				ClaimDate:   time.Now().Add(-time.Hour),
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should scope GetOwnClaims to the requester", func() {
			claims, err := service.GetOwnClaims(ctx, "alice", 20, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims).To(HaveLen(3))
		})

		It("should return everything from GetAllClaims", func() {
			claims, err := service.GetAllClaims(ctx, 20, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims).To(HaveLen(4))
		})

		It("should clamp a nonsense page size", func() {
			claims, err := service.GetAllClaims(ctx, -5, -2)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims).To(HaveLen(4))
		})
	})
})
