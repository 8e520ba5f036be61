package util

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateToken returns n random bytes encoded URL-safe without padding, so
// the result can travel in cookies and magic-link query parameters as-is.
// n=32 gives 256 bits of entropy.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
