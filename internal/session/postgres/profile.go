package session

import (
	"context"
	"errors"

	profileDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/profile"
	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed profile store. Records are read and written
// whole; the session manager owns all read-modify-write semantics.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) Get(ctx context.Context, id string) (*profile.UserProfile, error) {
	var record profileDatamodel.UserProfile
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrProfileNotFound
		}
		return nil, err
	}
	return profile.FromDataModel(&record), nil
}

func (s *Store) Set(ctx context.Context, id string, p *profile.UserProfile) error {
	record := profile.ToDataModel(p)
	record.ID = id
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}
