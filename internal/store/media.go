package store

import (
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// MediaStore persists media rows.
type MediaStore struct {
	db *gorm.DB
}

// MediaUpdate is a typed partial update for the mutable descriptive fields.
// Identity fields (mime type, size, dimensions) are immutable after upload.
type MediaUpdate struct {
	Filename *string
	URL      *string
	Caption  *string
	Alt      *string
}

func (s *MediaStore) Create(m *models.Media) error {
	if m.ID == "" {
		m.ID = util.NewID()
	}
	return translate(s.db.Create(m).Error)
}

func (s *MediaStore) FindByID(id string) (*models.Media, error) {
	var m models.Media
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// FindByIDs resolves a batch of ids, preserving input order and silently
// dropping ids that no longer resolve.
func (s *MediaStore) FindByIDs(ids []string) ([]models.Media, error) {
	if len(ids) == 0 {
		return []models.Media{}, nil
	}

	var rows []models.Media
	if err := s.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	byID := make(map[string]models.Media, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}

	out := make([]models.Media, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// FindAll lists media, newest first.
func (s *MediaStore) FindAll(limit, offset int) ([]models.Media, error) {
	var rows []models.Media
	tx := s.db.Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *MediaStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Media{}).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// Update merges the set descriptive fields. Media rows carry no updated_at
// column; creation identity is all that is tracked.
func (s *MediaStore) Update(id string, upd MediaUpdate) error {
	fields := map[string]interface{}{}
	if upd.Filename != nil {
		fields["filename"] = *upd.Filename
	}
	if upd.URL != nil {
		fields["url"] = *upd.URL
	}
	if upd.Caption != nil {
		fields["caption"] = *upd.Caption
	}
	if upd.Alt != nil {
		fields["alt"] = *upd.Alt
	}
	if len(fields) == 0 {
		return nil
	}

	res := s.db.Model(&models.Media{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent. Callers are responsible for checking references
// (projects, retouches) first: the store never cascades.
func (s *MediaStore) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.Media{}, "id = ?", id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
