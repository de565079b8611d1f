package store

import (
	"time"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"gorm.io/gorm"
)

// UserStore persists users.
type UserStore struct {
	db *gorm.DB
}

// UserUpdate is a typed partial update: nil fields are left untouched.
type UserUpdate struct {
	Email       *string
	Name        *string
	Role        *string
	LastLoginAt *time.Time
}

// Create inserts a user, assigning an id when absent. A duplicate email
// surfaces as ErrDuplicateKey.
func (s *UserStore) Create(u *models.User) error {
	if u.ID == "" {
		u.ID = util.NewID()
	}
	if u.Role == "" {
		u.Role = models.RoleEditor
	}
	return translate(s.db.Create(u).Error)
}

// FindByID returns ErrNotFound when the id resolves to no row.
func (s *UserStore) FindByID(id string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindByEmail returns ErrNotFound when no user owns the email.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindAll lists users, newest first.
func (s *UserStore) FindAll(f Filter) ([]models.User, error) {
	var users []models.User
	if err := f.apply(s.db.Model(&models.User{})).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Count counts all users.
func (s *UserStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// CountByRole counts users holding the given role.
func (s *UserStore) CountByRole(role string) (int64, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// Update merges the set fields and refreshes updated_at. The created_at
// column is never touched.
func (s *UserStore) Update(id string, upd UserUpdate) error {
	fields := map[string]interface{}{}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Role != nil {
		fields["role"] = *upd.Role
	}
	if upd.LastLoginAt != nil {
		fields["last_login_at"] = *upd.LastLoginAt
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent: deleting an absent id reports false, not an error.
func (s *UserStore) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
