package utils

import (
	"regexp"
	"testing"
)

func TestGenerateSecureToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		token, err := GenerateSecureToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !pattern.MatchString(token) {
			t.Fatalf("token %q is not 43 url-safe base64 characters", token)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
