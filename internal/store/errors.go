package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the identifier resolves to no row. Lookups return
	// it as an absent-value signal; it is not a storage fault.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey means a uniqueness constraint was violated (user
	// email, session token).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStorage wraps any other persistence failure. These always
	// propagate; nothing in this layer retries.
	ErrStorage = errors.New("storage fault")
)

// translate maps driver errors onto the store taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		// the sqlite driver reports unique violations as plain errors
		return ErrDuplicateKey
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
