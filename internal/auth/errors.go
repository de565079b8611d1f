package auth

import "errors"

var (
	// ErrInvalidOrExpiredToken covers both an unknown token and an expired
	// session. Callers never learn which, to avoid oracle responses.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrUserNotFound means the session resolved but its user record is
	// gone.
	ErrUserNotFound = errors.New("user not found")
)
