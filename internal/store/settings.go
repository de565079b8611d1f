package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"

	"gorm.io/gorm"
)

// SettingsStore persists the singleton SEO settings row.
type SettingsStore struct {
	db *gorm.DB
}

func (s *SettingsStore) Get() (*models.SEOSettings, error) {
	var settings models.SEOSettings
	if err := s.db.First(&settings, "id = ?", 1).Error; err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

// Update overwrites the settings row. The admin edits the whole form at
// once, so there is no partial variant.
func (s *SettingsStore) Update(settings *models.SEOSettings) error {
	settings.ID = 1
	settings.UpdatedAt = time.Now()
	res := s.db.Model(&models.SEOSettings{}).Where("id = ?", 1).Updates(map[string]interface{}{
		"site_name":              settings.SiteName,
		"author_name":            settings.AuthorName,
		"contact_email":          settings.ContactEmail,
		"location":               settings.Location,
		"robots_mode":            settings.RobotsMode,
		"google_verification":    settings.GoogleVerification,
		"facebook_verification":  settings.FacebookVerification,
		"pinterest_verification": settings.PinterestVerification,
		"bing_verification":      settings.BingVerification,
		"default_language":       settings.DefaultLanguage,
		"copyright_text":         settings.CopyrightText,
		"updated_at":             settings.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
