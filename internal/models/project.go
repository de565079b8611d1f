package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Publication statuses. Exactly two exist.
const (
	StatusPublished = "published"
	StatusInvisible = "invisible"
)

// Project is a portfolio project. The images column persists an ordered JSON
// array of media ids; the rows themselves are resolved lazily by the
// hydrate package.
type Project struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"size:1000" json:"description,omitempty"`
	Status      string `gorm:"size:16;index;not null;default:invisible" json:"status"`
	IsDraft     bool   `gorm:"not null;default:false" json:"is_draft"`
	ImagesJSON  string `gorm:"column:images" json:"-"`
	SEOFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageIDs decodes the persisted image id list. A missing or unparsable
// value yields an empty list.
func (p *Project) ImageIDs() []string {
	if p.ImagesJSON == "" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(p.ImagesJSON), &ids); err != nil {
		return []string{}
	}
	return ids
}

// EncodeImageIDs serializes an id list the way the images column stores it.
func EncodeImageIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

// Slug derives a URL-safe slug from the title.
func (p *Project) Slug() string {
	return Slugify(p.Title)
}

// Slugify lowercases, strips accents common in French titles and collapses
// everything else to hyphens.
func Slugify(title string) string {
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a", "ä", "a",
		"î", "i", "ï", "i",
		"ô", "o", "ö", "o",
		"ù", "u", "û", "u", "ü", "u",
		"ç", "c",
	)
	s := replacer.Replace(strings.ToLower(title))

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
