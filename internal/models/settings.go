package models

import "time"

// Robots modes for the SEO settings.
const (
	RobotsAllowAll     = "allow_all"
	RobotsProtectAdmin = "protect_admin"
	RobotsBlockAll     = "block_all"
)

// SEOSettings is a singleton row (id 1) with the site-wide SEO metadata.
type SEOSettings struct {
	ID                   int       `gorm:"primaryKey" json:"id"`
	SiteName             string    `gorm:"size:100" json:"site_name"`
	AuthorName           string    `gorm:"size:100" json:"author_name"`
	ContactEmail         string    `gorm:"size:255" json:"contact_email"`
	Location             string    `gorm:"size:100" json:"location"`
	RobotsMode           string    `gorm:"size:16;not null;default:protect_admin" json:"robots_mode"`
	GoogleVerification   string    `gorm:"size:255" json:"google_verification"`
	FacebookVerification string    `gorm:"size:255" json:"facebook_verification"`
	PinterestVerification string   `gorm:"size:255" json:"pinterest_verification"`
	BingVerification     string    `gorm:"size:255" json:"bing_verification"`
	DefaultLanguage      string    `gorm:"size:8;default:fr" json:"default_language"`
	CopyrightText        string    `gorm:"size:255" json:"copyright_text"`
	UpdatedAt            time.Time `json:"updated_at"`
}
