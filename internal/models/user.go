package models

import "time"

// User roles. Exactly two exist.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User represents someone allowed into the admin. There are no passwords:
// access is granted through magic-link sessions only.
type User struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"size:100" json:"name"`
	Role        string     `gorm:"size:16;not null;default:editor" json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
