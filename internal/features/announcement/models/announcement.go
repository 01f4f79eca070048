package models

import "time"

// Announcement is a promotional card shown in the bot. At most one
// announcement is active (Status == true) at any time.
type Announcement struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Subtitle    string    `gorm:"size:300;not null" json:"subtitle"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Reward      int64     `gorm:"not null" json:"reward"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	ImageName   string    `gorm:"size:255" json:"imageName"`
	Status      bool      `gorm:"not null" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateAnnouncementInput carries the multipart form fields of
// POST /create-annoucement. Image is filled in after the upload is stored.
type CreateAnnouncementInput struct {
	Title       string `form:"title" binding:"required"`
	Subtitle    string `form:"subtitle" binding:"required"`
	Description string `form:"description" binding:"required"`
	Reward      int64  `form:"reward"`
	ImageName   string `form:"imageName"`
	Status      bool   `form:"status"`
	Image       string `form:"-"`
}

// AnnouncementPatch lists the fields an update may change. Nil means keep.
type AnnouncementPatch struct {
	Title       *string `json:"title,omitempty"`
	Subtitle    *string `json:"subtitle,omitempty"`
	Description *string `json:"description,omitempty"`
	Reward      *int64  `json:"reward,omitempty"`
	ImageName   *string `json:"imageName,omitempty"`
	Status      *bool   `json:"status,omitempty"`
}

// UpdateAnnouncementRequest is the body of PUT /update-annoucement.
type UpdateAnnouncementRequest struct {
	ID         string            `json:"id" binding:"required"`
	UpdateData AnnouncementPatch `json:"updateData"`
}

// ToggleAnnouncementRequest is the body of POST /toggle-annoucement.
type ToggleAnnouncementRequest struct {
	ID string `json:"id" binding:"required"`
}

// AnnouncementsResponse represents the announcement listing
type AnnouncementsResponse struct {
	Status        string          `json:"status" example:"success"`
	Announcements []*Announcement `json:"annoucements"`
}

// AnnouncementResponse wraps a single announcement
type AnnouncementResponse struct {
	Status  string        `json:"status" example:"success"`
	Message string        `json:"message" example:"Announcement status updated successfully!"`
	Data    *Announcement `json:"data"`
}
