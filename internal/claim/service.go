package claim

import (
	"context"
	"log/slog"

	"github.com/danuprasetya/hr-management/internal"
)

// Repository defines the data access methods for claims.
type Repository interface {
	Create(ctx context.Context, claim *Claim) error
	GetByID(ctx context.Context, id int64) (*Claim, error)
	GetByProfileID(ctx context.Context, profileID string, limit, offset int) ([]*Claim, error)
	GetAll(ctx context.Context, limit, offset int) ([]*Claim, error)
	UpdateStatus(ctx context.Context, claim *Claim) error
}

// Service handles claim business logic. Route-level gates decide who may
// reach the approval operations; the service still enforces ownership on
// reads so a claim never leaks across users.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SubmitClaim creates a claim, auto-approving small amounts.
func (s *Service) SubmitClaim(ctx context.Context, profileID string, dto CreateClaimDTO) (*Claim, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("claim validation failed", "error", err, "profile_id", profileID)
		return nil, err
	}

	claim := NewClaim(profileID, dto)
	if err := s.repo.Create(ctx, claim); err != nil {
		s.logger.Error("failed to create claim", "error", err, "profile_id", profileID)
		return nil, err
	}

	s.logger.Info("claim submitted",
		"claim_id", claim.ID,
		"profile_id", profileID,
		"amount", claim.Amount,
		"status", claim.Status)

	return claim, nil
}

// GetClaimByID retrieves a claim; non-approvers only see their own.
func (s *Service) GetClaimByID(ctx context.Context, id int64, requesterID string, canViewAll bool) (*Claim, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get claim", "error", err, "claim_id", id)
		return nil, internal.ErrClaimNotFound
	}

	if !canViewAll && claim.ProfileID != requesterID {
		s.logger.Warn("unauthorized access to claim", "claim_id", id, "requester_id", requesterID)
		return nil, internal.ErrUnauthorizedAccess
	}

	return claim, nil
}

// GetOwnClaims lists the requester's claims.
func (s *Service) GetOwnClaims(ctx context.Context, profileID string, limit, offset int) ([]*Claim, error) {
	limit, offset = normalizePage(limit, offset)
	claims, err := s.repo.GetByProfileID(ctx, profileID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get claims", "error", err, "profile_id", profileID)
		return nil, err
	}
	return claims, nil
}

// GetAllClaims lists every claim, for approvers.
func (s *Service) GetAllClaims(ctx context.Context, limit, offset int) ([]*Claim, error) {
	limit, offset = normalizePage(limit, offset)
	claims, err := s.repo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to get all claims", "error", err)
		return nil, err
	}
	return claims, nil
}

// ApproveClaim approves a pending claim.
func (s *Service) ApproveClaim(ctx context.Context, claimID int64, approverID string) (*Claim, error) {
	claim, err := s.repo.GetByID(ctx, claimID)
	if err != nil {
		return nil, internal.ErrClaimNotFound
	}

	if !claim.CanBeApproved() {
		s.logger.Warn("claim not approvable", "claim_id", claimID, "status", claim.Status)
		return nil, internal.ErrInvalidClaimStatus
	}

	claim.Approve(approverID)
	if err := s.repo.UpdateStatus(ctx, claim); err != nil {
		s.logger.Error("failed to approve claim", "error", err, "claim_id", claimID)
		return nil, err
	}

	s.logger.Info("claim approved", "claim_id", claimID, "approver_id", approverID)
	return claim, nil
}

// RejectClaim rejects a pending claim with a reason.
func (s *Service) RejectClaim(ctx context.Context, claimID int64, approverID string, dto RejectClaimDTO) (*Claim, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	claim, err := s.repo.GetByID(ctx, claimID)
	if err != nil {
		return nil, internal.ErrClaimNotFound
	}

	if !claim.CanBeRejected() {
		s.logger.Warn("claim not rejectable", "claim_id", claimID, "status", claim.Status)
		return nil, internal.ErrInvalidClaimStatus
	}

	claim.Reject(approverID, dto.Reason)
	if err := s.repo.UpdateStatus(ctx, claim); err != nil {
		s.logger.Error("failed to reject claim", "error", err, "claim_id", claimID)
		return nil, err
	}

	s.logger.Info("claim rejected", "claim_id", claimID, "approver_id", approverID)
	return claim, nil
}

// normalizePage clamps paging inputs to sane bounds.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
