package models

import "time"

// Retouche is a before/after retouching showcase. Both image references are
// mandatory; a retouche whose images no longer resolve is corrupt data and
// is reported as such by the hydrate package.
type Retouche struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	Title         string `gorm:"size:100;not null" json:"title"`
	BeforeImageID string `gorm:"size:36;column:before_image;not null" json:"before_image"`
	AfterImageID  string `gorm:"size:36;column:after_image;not null" json:"after_image"`
	Status        string `gorm:"size:16;index;not null;default:invisible" json:"status"`
	SEOFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slug derives a URL-safe slug from the title.
func (r *Retouche) Slug() string {
	return Slugify(r.Title)
}
