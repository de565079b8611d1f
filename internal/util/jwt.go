package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DownloadClaims is the payload of a signed download token. Export links are
// plain GETs opened by the browser, which cannot attach the session header,
// so they carry a short-lived signed token scoped to a single resource and
// output format instead.
type DownloadClaims struct {
	UserID   string `json:"user_id"`
	Resource string `json:"resource"`
	Format   string `json:"format"`
	jwt.RegisteredClaims
}

// GenerateDownloadToken signs a token for one resource and format with the
// given TTL.
func GenerateDownloadToken(secret, userID, resource, format string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &DownloadClaims{
		UserID:   userID,
		Resource: resource,
		Format:   format,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseDownloadToken verifies a download token and returns its claims.
func ParseDownloadToken(secret, tokenStr string) (*DownloadClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &DownloadClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*DownloadClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
