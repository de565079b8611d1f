package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// ProjectStore persists projects.
type ProjectStore struct {
	db *gorm.DB
}

// ProjectUpdate is a typed partial update: nil fields are left untouched.
// ImageIDs replaces the whole ordered list; SEO replaces the whole
// sub-record, matching how the admin edits them.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Status      *string
	IsDraft     *bool
	ImageIDs    *[]string
	SEO         *models.SEOFields
}

// TouchesImages reports whether applying the update rewrites the persisted
// image id list. Hydration caches must be invalidated when it does.
func (u ProjectUpdate) TouchesImages() bool {
	return u.ImageIDs != nil
}

func (s *ProjectStore) Create(p *models.Project) error {
	if p.ID == "" {
		p.ID = util.NewID()
	}
	if p.Status == "" {
		p.Status = models.StatusInvisible
	}
	if p.ImagesJSON == "" {
		p.ImagesJSON = models.EncodeImageIDs(nil)
	}
	return translate(s.db.Create(p).Error)
}

func (s *ProjectStore) FindByID(id string) (*models.Project, error) {
	var p models.Project
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// FindAll lists projects, newest first, optionally filtered by status.
func (s *ProjectStore) FindAll(f Filter) ([]models.Project, error) {
	var rows []models.Project
	if err := f.apply(s.db.Model(&models.Project{})).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *ProjectStore) Count(status string) (int64, error) {
	var n int64
	tx := s.db.Model(&models.Project{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// FindPublishedWithImages lists published, non-draft projects that actually
// have images, newest first, with the total for pagination.
func (s *ProjectStore) FindPublishedWithImages(limit, offset int) ([]models.Project, int64, error) {
	base := s.db.Model(&models.Project{}).
		Where("status = ? AND is_draft = ?", models.StatusPublished, false).
		Where("images IS NOT NULL AND images != '' AND images != '[]'")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var rows []models.Project
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

// Random picks published, non-draft projects with images at random, for the
// public hero.
func (s *ProjectStore) Random(count int) ([]models.Project, error) {
	if count < 1 {
		count = 1
	}
	var rows []models.Project
	err := s.db.
		Where("status = ? AND is_draft = ?", models.StatusPublished, false).
		Where("images IS NOT NULL AND images != '' AND images != '[]'").
		Order("RANDOM()").
		Limit(count).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// Update merges the set fields and refreshes updated_at, never created_at.
func (s *ProjectStore) Update(id string, upd ProjectUpdate) error {
	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.IsDraft != nil {
		fields["is_draft"] = *upd.IsDraft
	}
	if upd.ImageIDs != nil {
		fields["images"] = models.EncodeImageIDs(*upd.ImageIDs)
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

	res := s.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent.
func (s *ProjectStore) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReferencingMedia returns ids of projects whose image list contains the
// media id. Used before media deletion; the store never cascades.
func (s *ProjectStore) ReferencingMedia(mediaID string) ([]string, error) {
	var rows []models.Project
	if err := s.db.Select("id", "images").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	var out []string
	for i := range rows {
		for _, id := range rows[i].ImageIDs() {
			if id == mediaID {
				out = append(out, rows[i].ID)
				break
			}
		}
	}
	return out, nil
}
