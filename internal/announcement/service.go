package announcement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	announcementDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/announcement"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*announcementDatamodel.Announcement, error)
	GetByID(ctx context.Context, id int64) (*announcementDatamodel.Announcement, error)
	Create(ctx context.Context, a *announcementDatamodel.Announcement) error
	Update(ctx context.Context, a *announcementDatamodel.Announcement) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetActiveAnnouncements lists active announcements, pinned first.
func (s *Service) GetActiveAnnouncements(ctx context.Context) ([]*Announcement, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get announcements from repository", "error", err)
		return nil, err
	}

	var active []*Announcement
	for _, record := range records {
		if !record.IsActive {
			continue
		}
		active = append(active, FromDataModel(record))
	}

	s.logger.Info("retrieved announcements", "count", len(active))
	return active, nil
}

// Publish creates a new announcement authored by the given profile.
func (s *Service) Publish(ctx context.Context, authorID string, dto CreateAnnouncementDTO) (*Announcement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := NewAnnouncement(authorID, dto)
	record := ToDataModel(a)
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to create announcement", "error", err, "author_id", authorID)
		return nil, err
	}
	a.ID = record.ID

	s.logger.Info("announcement published", "announcement_id", a.ID, "author_id", authorID, "pinned", a.Pinned)
	return a, nil
}

// Edit applies the set fields of the update to an existing announcement.
func (s *Service) Edit(ctx context.Context, id int64, dto UpdateAnnouncementDTO) (*Announcement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrAnnouncementNotFound
	}

	a := FromDataModel(record)
	if dto.Title != nil {
		a.Title = *dto.Title
	}
	if dto.Body != nil {
		a.Body = *dto.Body
	}
	if dto.Pinned != nil {
		a.Pinned = *dto.Pinned
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, ToDataModel(a)); err != nil {
		s.logger.Error("failed to update announcement", "error", err, "announcement_id", id)
		return nil, err
	}

	return a, nil
}

// Retire deactivates an announcement so it no longer appears in listings.
func (s *Service) Retire(ctx context.Context, id int64) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrAnnouncementNotFound
	}

	a := FromDataModel(record)
	a.Retire()

	if err := s.repo.Update(ctx, ToDataModel(a)); err != nil {
		s.logger.Error("failed to retire announcement", "error", err, "announcement_id", id)
		return err
	}

	s.logger.Info("announcement retired", "announcement_id", id)
	return nil
}
