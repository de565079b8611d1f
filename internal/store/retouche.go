package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// RetoucheStore persists retouches.
type RetoucheStore struct {
	db *gorm.DB
}

// RetoucheUpdate is a typed partial update: nil fields are left untouched.
type RetoucheUpdate struct {
	Title         *string
	Status        *string
	BeforeImageID *string
	AfterImageID  *string
	SEO           *models.SEOFields
}

// TouchesImages reports whether applying the update rewrites either image
// reference.
func (u RetoucheUpdate) TouchesImages() bool {
	return u.BeforeImageID != nil || u.AfterImageID != nil
}

func (s *RetoucheStore) Create(r *models.Retouche) error {
	if r.ID == "" {
		r.ID = util.NewID()
	}
	if r.Status == "" {
		r.Status = models.StatusInvisible
	}
	return translate(s.db.Create(r).Error)
}

func (s *RetoucheStore) FindByID(id string) (*models.Retouche, error) {
	var r models.Retouche
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// FindAll lists retouches, newest first, optionally filtered by status.
func (s *RetoucheStore) FindAll(f Filter) ([]models.Retouche, error) {
	var rows []models.Retouche
	if err := f.apply(s.db.Model(&models.Retouche{})).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *RetoucheStore) Count(status string) (int64, error) {
	var n int64
	tx := s.db.Model(&models.Retouche{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// FindPublished lists published retouches, newest first, with the total.
func (s *RetoucheStore) FindPublished(limit, offset int) ([]models.Retouche, int64, error) {
	base := s.db.Model(&models.Retouche{}).Where("status = ?", models.StatusPublished)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var rows []models.Retouche
	tx := base.Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, translate(err)
	}
	return rows, total, nil
}

// Random picks published retouches at random, for the public hero.
func (s *RetoucheStore) Random(count int) ([]models.Retouche, error) {
	if count < 1 {
		count = 1
	}
	var rows []models.Retouche
	err := s.db.
		Where("status = ?", models.StatusPublished).
		Order("RANDOM()").
		Limit(count).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// Update merges the set fields and refreshes updated_at, never created_at.
func (s *RetoucheStore) Update(id string, upd RetoucheUpdate) error {
	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.BeforeImageID != nil {
		fields["before_image"] = *upd.BeforeImageID
	}
	if upd.AfterImageID != nil {
		fields["after_image"] = *upd.AfterImageID
	}
	if upd.SEO != nil {
		fields["seo_title"] = upd.SEO.SEOTitle
		fields["seo_description"] = upd.SEO.SEODescription
		fields["seo_keywords"] = upd.SEO.SEOKeywords
		fields["seo_og_image"] = upd.SEO.SEOOGImageID
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	res := s.db.Model(&models.Retouche{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent.
func (s *RetoucheStore) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.Retouche{}, "id = ?", id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReferencingMedia returns ids of retouches whose before or after image is
// the media id.
func (s *RetoucheStore) ReferencingMedia(mediaID string) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.Retouche{}).
		Where("before_image = ? OR after_image = ?", mediaID, mediaID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}
