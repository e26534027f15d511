package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureToken returns 32 random bytes as unpadded URL-safe base64:
// a 43-character opaque string over [A-Za-z0-9_-].
func GenerateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
