package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateOpaqueToken returns a 64-character hex string from 32 bytes of
// crypto/rand. Used for refresh, verify-email and reset-password tokens.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
