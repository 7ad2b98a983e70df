package announcement

import "errors"

// CreateAnnouncementDTO is the request payload for publishing an announcement.
type CreateAnnouncementDTO struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (dto CreateAnnouncementDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if dto.Body == "" {
		return errors.New("body is required")
	}
	return nil
}

// UpdateAnnouncementDTO carries the editable fields; nil means leave as-is.
type UpdateAnnouncementDTO struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
}

func (dto UpdateAnnouncementDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return errors.New("title cannot be empty")
	}
	if dto.Title != nil && len(*dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if dto.Body != nil && *dto.Body == "" {
		return errors.New("body cannot be empty")
	}
	return nil
}

type AnnouncementsResponse struct {
	Announcements []*Announcement `json:"announcements"`
}
