package models

import "time"

// Announcement is a notice shown to all tenants.
type Announcement struct {
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ID        int64     `json:"id"`
}

// AnnouncementPatch carries a partial announcement update.
type AnnouncementPatch struct {
	Title   *string
	Content *string
}
