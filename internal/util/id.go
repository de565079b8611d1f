package util

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// TokenLength is the byte length of session tokens: 32 bytes, 256 bits,
// 64 hex characters on the wire.
const TokenLength = 32

// NewID returns a random 128-bit identifier for entity primary keys.
func NewID() string {
	return uuid.NewString()
}

// NewToken returns a 256-bit random bearer token as a fixed-length hex
// string. Entropy starvation is not a recoverable condition.
func NewToken() string {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("util: entropy source unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
