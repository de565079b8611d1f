package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// AboutStore persists the about page and its child collections.
type AboutStore struct {
	db *gorm.DB
}

// AboutContent is the about page with its children resolved and ordered.
type AboutContent struct {
	Page     models.AboutPage
	Clients  []models.Client
	Contacts []models.Contact
}

// Get loads the singleton page with clients and contacts in display order.
func (s *AboutStore) Get() (*AboutContent, error) {
	var content AboutContent

	if err := s.db.First(&content.Page, "id = ?", 1).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Order("order_index ASC").Find(&content.Clients).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Order("order_index ASC").Find(&content.Contacts).Error; err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

// Replace overwrites the page text and both child collections in a single
// transaction, so a partial failure can never leave children orphaned from
// a stale parent.
func (s *AboutStore) Replace(page models.AboutPage, clients []models.Client, contacts []models.Contact) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AboutPage{}).Where("id = ?", 1).Updates(map[string]interface{}{
			"exergue":    page.Exergue,
			"content":    page.Content,
			"updated_at": time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}

		if err := tx.Where("1 = 1").Delete(&models.Client{}).Error; err != nil {
			return err
		}
		for i := range clients {
			if clients[i].ID == "" {
				clients[i].ID = util.NewID()
			}
			clients[i].OrderIndex = i
			if err := tx.Create(&clients[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("1 = 1").Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		for i := range contacts {
			if contacts[i].ID == "" {
				contacts[i].ID = util.NewID()
			}
			contacts[i].OrderIndex = i
			if err := tx.Create(&contacts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}
