package announcement

import (
	"time"

	announcementDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/announcement"
)

type Announcement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorID    string    `json:"author_id"`
	Pinned      bool      `json:"pinned"`
	IsActive    bool      `json:"is_active"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Announcement) Pin() {
	a.Pinned = true
	a.UpdatedAt = time.Now()
}

func (a *Announcement) Unpin() {
	a.Pinned = false
	a.UpdatedAt = time.Now()
}

func (a *Announcement) Retire() {
	a.IsActive = false
	a.UpdatedAt = time.Now()
}

func NewAnnouncement(authorID string, dto CreateAnnouncementDTO) *Announcement {
	now := time.Now()
	return &Announcement{
		Title:       dto.Title,
		Body:        dto.Body,
		AuthorID:    authorID,
		Pinned:      dto.Pinned,
		IsActive:    true,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(a *Announcement) *announcementDatamodel.Announcement {
	return &announcementDatamodel.Announcement{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		AuthorID:    a.AuthorID,
		Pinned:      a.Pinned,
		IsActive:    a.IsActive,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func FromDataModel(a *announcementDatamodel.Announcement) *Announcement {
	return &Announcement{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		AuthorID:    a.AuthorID,
		Pinned:      a.Pinned,
		IsActive:    a.IsActive,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
