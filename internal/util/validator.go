package util

import (
	"fmt"
	"regexp"
)

const (
	EmailMaxLength       = 255
	TitleMaxLength       = 100
	DescriptionMaxLength = 1000
	CaptionMaxLength     = 500
	AltMaxLength         = 255
	SEOTitleMaxLength    = 60
	SEODescMaxLength     = 160
	SEOKeywordsMaxCount  = 10
	MaxProjectImages     = 50
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks shape and length, nothing more.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > EmailMaxLength {
		return fmt.Errorf("email must be at most %d characters", EmailMaxLength)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidStatus reports whether s is one of the two publication statuses.
func ValidStatus(s string) bool {
	return s == "published" || s == "invisible"
}

// ValidRole reports whether s is one of the two user roles.
func ValidRole(s string) bool {
	return s == "admin" || s == "editor"
}

// Pagination clamps page/limit query values into limit and offset.
func Pagination(pageStr, limitStr string, defaultLimit, maxLimit int) (limit, offset int) {
	page := atoiDefault(pageStr, 1)
	if page < 1 {
		page = 1
	}
	limit = atoiDefault(limitStr, defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, (page - 1) * limit
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return def
		}
	}
	if n == 0 {
		return def
	}
	return n
}
