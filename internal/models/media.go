package models

import "time"

// Media is the central table for uploaded images. Identity fields are
// immutable after creation; only the descriptive fields may change.
type Media struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	Caption   string    `gorm:"size:500" json:"caption,omitempty"`
	Alt       string    `gorm:"size:255" json:"alt,omitempty"`
	MimeType  string    `gorm:"size:64;not null" json:"mime_type"`
	Size      int64     `gorm:"not null" json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}
