package postgres

import (
	"context"

	"github.com/danuprasetya/hr-management/internal/claim"
	claimDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/claim"
	"gorm.io/gorm"
)

// ClaimRepository implements the claim.Repository interface using GORM
type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	record := claim.ToDataModel(c)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}
	c.ID = record.ID
	return nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*claim.Claim, error) {
	var record claimDatamodel.Claim
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return claim.FromDataModel(&record), nil
}

func (r *ClaimRepository) GetByProfileID(ctx context.Context, profileID string, limit, offset int) ([]*claim.Claim, error) {
	var records []*claimDatamodel.Claim
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return claim.FromDataModelSlice(records), nil
}

func (r *ClaimRepository) GetAll(ctx context.Context, limit, offset int) ([]*claim.Claim, error) {
	var records []*claimDatamodel.Claim
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return claim.FromDataModelSlice(records), nil
}

func (r *ClaimRepository) UpdateStatus(ctx context.Context, c *claim.Claim) error {
	return r.db.WithContext(ctx).
		Model(&claimDatamodel.Claim{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":           c.Status,
			"processed_at":     c.ProcessedAt,
			"processed_by":     c.ProcessedBy,
			"rejection_reason": c.RejectionReason,
			"updated_at":       c.UpdatedAt,
		}).Error
}
