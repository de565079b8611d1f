package models

import "time"

// Session is a bearer credential row. Magic-link (verification) sessions and
// logged-in (authenticated) sessions share the table and differ only in the
// TTL they were created with. A session is valid iff now < ExpiresAt.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session has not expired at t.
func (s *Session) Valid(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// ExpiringSoon reports whether less than threshold remains before expiry.
func (s *Session) ExpiringSoon(t time.Time, threshold time.Duration) bool {
	return s.ExpiresAt.Sub(t) < threshold
}
