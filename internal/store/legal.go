package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"

	"gorm.io/gorm"
)

// LegalStore persists the static legal pages.
type LegalStore struct {
	db *gorm.DB
}

// FindAll lists every legal page, ordered by type.
func (s *LegalStore) FindAll() ([]models.LegalPage, error) {
	var pages []models.LegalPage
	if err := s.db.Order("type ASC").Find(&pages).Error; err != nil {
		return nil, translate(err)
	}
	return pages, nil
}

// FindPublished lists the publicly visible pages, ordered by type.
func (s *LegalStore) FindPublished() ([]models.LegalPage, error) {
	var pages []models.LegalPage
	if err := s.db.Where("is_published = ?", true).Order("type ASC").Find(&pages).Error; err != nil {
		return nil, translate(err)
	}
	return pages, nil
}

// FindByType returns ErrNotFound when no page owns the type slug.
func (s *LegalStore) FindByType(pageType string) (*models.LegalPage, error) {
	var page models.LegalPage
	if err := s.db.First(&page, "type = ?", pageType).Error; err != nil {
		return nil, translate(err)
	}
	return &page, nil
}

// Upsert writes the whole page row, creating it when the type slug is new.
func (s *LegalStore) Upsert(page *models.LegalPage) error {
	page.UpdatedAt = time.Now()
	return translate(s.db.Save(page).Error)
}
