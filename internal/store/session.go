package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// SessionStore persists session rows. Expiry is data, not state: validity
// checks belong to the auth manager, this layer only reads and writes rows.
type SessionStore struct {
	db *gorm.DB
}

// Create inserts a session, assigning id and token when absent. A duplicate
// token surfaces as ErrDuplicateKey.
func (s *SessionStore) Create(sess *models.Session) error {
	if sess.ID == "" {
		sess.ID = util.NewID()
	}
	if sess.Token == "" {
		sess.Token = util.NewToken()
	}
	return translate(s.db.Create(sess).Error)
}

// FindByToken returns ErrNotFound when no row owns the token, expired or
// not.
func (s *SessionStore) FindByToken(token string) (*models.Session, error) {
	var sess models.Session
	if err := s.db.First(&sess, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

// FindByID returns ErrNotFound when the id resolves to no row.
func (s *SessionStore) FindByID(id string) (*models.Session, error) {
	var sess models.Session
	if err := s.db.First(&sess, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

// FindActiveByUser lists a user's unexpired sessions, newest first.
func (s *SessionStore) FindActiveByUser(userID string, now time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, translate(err)
	}
	return sessions, nil
}

// UpdateExpiry moves a session's expiry. Used by the sliding renewal; the
// write only ever pushes expiry forward.
func (s *SessionStore) UpdateExpiry(id string, expiresAt time.Time) error {
	res := s.db.Model(&models.Session{}).Where("id = ?", id).Update("expires_at", expiresAt)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent.
func (s *SessionStore) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.Session{}, "id = ?", id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByToken is idempotent.
func (s *SessionStore) DeleteByToken(token string) (bool, error) {
	res := s.db.Delete(&models.Session{}, "token = ?", token)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAllForUser removes every session of a user and reports how many
// rows went away.
func (s *SessionStore) DeleteAllForUser(userID string) (int64, error) {
	res := s.db.Delete(&models.Session{}, "user_id = ?", userID)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteExpired removes every session whose expiry has passed.
func (s *SessionStore) DeleteExpired(now time.Time) (int64, error) {
	res := s.db.Delete(&models.Session{}, "expires_at <= ?", now)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}
