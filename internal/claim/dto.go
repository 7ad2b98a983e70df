package claim

import (
	"errors"
	"time"
)

// CreateClaimDTO is the request payload for submitting a claim.
type CreateClaimDTO struct {
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ClaimDate   time.Time `json:"claim_date"`
	ReceiptURL  *string   `json:"receipt_url,omitempty"`
}

var validCategories = map[string]bool{
	"travel":    true,
	"medical":   true,
	"equipment": true,
	"meals":     true,
	"training":  true,
	"other":     true,
}

func (dto CreateClaimDTO) Validate() error {
	if dto.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	if dto.Description == "" {
		return errors.New("description is required")
	}
	if len(dto.Description) > 500 {
		return errors.New("description must be less than 500 characters")
	}
	if !validCategories[dto.Category] {
		return errors.New("unknown claim category")
	}
	if dto.ClaimDate.IsZero() {
		return errors.New("claim date is required")
	}
	if dto.ClaimDate.After(time.Now()) {
		return errors.New("claim date cannot be in the future")
	}
	return nil
}

// RejectClaimDTO is the request payload for rejecting a claim.
type RejectClaimDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectClaimDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting a claim")
	}
	return nil
}
