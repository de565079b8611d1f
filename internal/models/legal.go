package models

import "time"

// Legal page types. The three defaults are seeded at migration time; the
// upsert route accepts further slugs should the site ever need another
// static page.
const (
	LegalMentions = "mentions-legales"
	LegalTerms    = "cgu"
	LegalPrivacy  = "politique-confidentialite"
)

// LegalPage is a static legal text keyed by its type slug.
type LegalPage struct {
	Type        string    `gorm:"primaryKey;size:64" json:"type"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}
