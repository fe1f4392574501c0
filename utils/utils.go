package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateResetToken returns a fresh random reset token in plaintext plus
// the sha256 hash that gets persisted. The plaintext is shown to the
// caller exactly once.
func GenerateResetToken() (token string, hash string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

// HashToken hashes a reset token for storage and lookup.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
