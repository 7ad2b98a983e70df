package claim

import "time"

// Claim is the persisted expense-claim record.
type Claim struct {
	ID              int64      `gorm:"primaryKey"`
	ProfileID       string     `gorm:"column:profile_id;not null;index"`
	Amount          int64      `gorm:"column:amount;not null"`
	Description     string     `gorm:"column:description;not null"`
	Category        string     `gorm:"column:category"`
	ReceiptURL      *string    `gorm:"column:receipt_url"`
	Status          string     `gorm:"column:status;default:pending_approval"`
	ClaimDate       time.Time  `gorm:"column:claim_date;type:date"`
	SubmittedAt     time.Time  `gorm:"column:submitted_at;default:now()"`
	ProcessedAt     *time.Time `gorm:"column:processed_at"`
	ProcessedBy     *string    `gorm:"column:processed_by"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Claim) TableName() string {
	return "claims"
}
