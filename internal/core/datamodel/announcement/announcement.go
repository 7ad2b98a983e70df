package announcement

import "time"

// Announcement is the persisted company-wide notice record.
type Announcement struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Body        string    `gorm:"column:body;not null"`
	AuthorID    string    `gorm:"column:author_id;not null;index"`
	Pinned      bool      `gorm:"column:pinned;default:false"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	PublishedAt time.Time `gorm:"column:published_at;default:now()"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Announcement) TableName() string {
	return "announcements"
}
