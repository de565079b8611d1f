package models

import "encoding/json"

// SEOFields is the per-entity SEO sub-record embedded in projects and
// retouches. Keywords are stored as a JSON array, the open-graph image as a
// bare media id.
type SEOFields struct {
	SEOTitle       string `gorm:"size:60;column:seo_title" json:"seo_title,omitempty"`
	SEODescription string `gorm:"size:160;column:seo_description" json:"seo_description,omitempty"`
	SEOKeywords    string `gorm:"column:seo_keywords" json:"-"`
	SEOOGImageID   string `gorm:"size:36;column:seo_og_image" json:"seo_og_image,omitempty"`
}

// Keywords decodes the stored keyword list. A missing or unparsable value
// yields an empty list, matching the tolerant SEO contract.
func (s *SEOFields) Keywords() []string {
	if s.SEOKeywords == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s.SEOKeywords), &out); err != nil {
		return []string{}
	}
	return out
}

// SetKeywords serializes the keyword list for persistence.
func (s *SEOFields) SetKeywords(keywords []string) {
	if len(keywords) == 0 {
		s.SEOKeywords = ""
		return
	}
	b, err := json.Marshal(keywords)
	if err != nil {
		return
	}
	s.SEOKeywords = string(b)
}
