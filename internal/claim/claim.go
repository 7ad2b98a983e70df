package claim

import (
	"time"

	claimDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/claim"
)

type Claim struct {
	ID              int64      `json:"id"`
	ProfileID       string     `json:"profile_id"`
	Amount          int64      `json:"amount"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	ReceiptURL      *string    `json:"receipt_url,omitempty"`
	Status          string     `json:"status"`
	ClaimDate       time.Time  `json:"claim_date"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessedBy     *string    `json:"processed_by,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"

	// Claims below this amount skip the approval queue.
	AutoApprovalThreshold = 100000
)

func (c *Claim) CanBeApproved() bool {
	return c.Status == StatusPendingApproval
}

func (c *Claim) CanBeRejected() bool {
	return c.Status == StatusPendingApproval
}

func (c *Claim) ShouldBeAutoApproved() bool {
	return c.Amount < AutoApprovalThreshold
}

func (c *Claim) Approve(approverID string) {
	now := time.Now()
	c.Status = StatusApproved
	c.ProcessedAt = &now
	c.ProcessedBy = &approverID
	c.UpdatedAt = now
}

func (c *Claim) Reject(approverID, reason string) {
	now := time.Now()
	c.Status = StatusRejected
	c.ProcessedAt = &now
	c.ProcessedBy = &approverID
	c.RejectionReason = &reason
	c.UpdatedAt = now
}

func NewClaim(profileID string, dto CreateClaimDTO) *Claim {
	now := time.Now()

	claim := &Claim{
		ProfileID:   profileID,
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    dto.Category,
		ReceiptURL:  dto.ReceiptURL,
		Status:      StatusPendingApproval,
		ClaimDate:   dto.ClaimDate,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if claim.ShouldBeAutoApproved() {
		claim.Approve("system")
	}

	return claim
}

func ToDataModel(c *Claim) *claimDatamodel.Claim {
	return &claimDatamodel.Claim{
		ID:              c.ID,
		ProfileID:       c.ProfileID,
		Amount:          c.Amount,
		Description:     c.Description,
		Category:        c.Category,
		ReceiptURL:      c.ReceiptURL,
		Status:          c.Status,
		ClaimDate:       c.ClaimDate,
		SubmittedAt:     c.SubmittedAt,
		ProcessedAt:     c.ProcessedAt,
		ProcessedBy:     c.ProcessedBy,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func FromDataModel(c *claimDatamodel.Claim) *Claim {
	return &Claim{
		ID:              c.ID,
		ProfileID:       c.ProfileID,
		Amount:          c.Amount,
		Description:     c.Description,
		Category:        c.Category,
		ReceiptURL:      c.ReceiptURL,
		Status:          c.Status,
		ClaimDate:       c.ClaimDate,
		SubmittedAt:     c.SubmittedAt,
		ProcessedAt:     c.ProcessedAt,
		ProcessedBy:     c.ProcessedBy,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func FromDataModelSlice(claims []*claimDatamodel.Claim) []*Claim {
	result := make([]*Claim, len(claims))
	for i, c := range claims {
		result[i] = FromDataModel(c)
	}
	return result
}
