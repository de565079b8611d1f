package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models and seeds the
// singleton rows.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Media{},
		&models.Project{},
		&models.Retouche{},
		&models.AboutPage{},
		&models.Client{},
		&models.Contact{},
		&models.SEOSettings{},
		&models.LegalPage{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := seedSingletons(db); err != nil {
		return fmt.Errorf("seed singletons: %w", err)
	}

	return nil
}

func seedSingletons(db *gorm.DB) error {
	about := models.AboutPage{ID: 1}
	if err := db.FirstOrCreate(&about, models.AboutPage{ID: 1}).Error; err != nil {
		return err
	}

	settings := models.SEOSettings{
		ID:              1,
		RobotsMode:      models.RobotsProtectAdmin,
		DefaultLanguage: "fr",
	}
	if err := db.FirstOrCreate(&settings, models.SEOSettings{ID: 1}).Error; err != nil {
		return err
	}

	legalDefaults := []models.LegalPage{
		{Type: models.LegalMentions, Title: "Mentions légales", IsPublished: true},
		{Type: models.LegalTerms, Title: "Conditions générales d'utilisation", IsPublished: true},
		{Type: models.LegalPrivacy, Title: "Politique de confidentialité", IsPublished: true},
	}
	for i := range legalDefaults {
		page := legalDefaults[i]
		if err := db.FirstOrCreate(&page, models.LegalPage{Type: page.Type}).Error; err != nil {
			return err
		}
	}

	return nil
}

// EnsureAdmin creates an admin user for the configured email when no admin
// exists yet, so a fresh install can log in at all.
func EnsureAdmin(db *gorm.DB, email string) error {
	if email == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	admin := models.User{
		ID:    util.NewID(),
		Email: email,
		Name:  name,
		Role:  models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Printf("seeded initial admin %s", email)
	return nil
}
