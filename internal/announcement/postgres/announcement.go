package postgres

import (
	"context"

	"github.com/danuprasetya/hr-management/internal/announcement"
	announcementDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/announcement"
	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) announcement.RepositoryAPI {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) GetAll(ctx context.Context) ([]*announcementDatamodel.Announcement, error) {
	var records []*announcementDatamodel.Announcement
	err := r.db.WithContext(ctx).
		Order("pinned DESC, published_at DESC").
		Find(&records).Error
	return records, err
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*announcementDatamodel.Announcement, error) {
	var record announcementDatamodel.Announcement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *announcementDatamodel.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *announcementDatamodel.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}
