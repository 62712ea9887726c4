// Package verification issues 6-digit account verification codes and confirms them. Only the
// SHA-256 hash of a code is stored, with an expiry, in memory or in Redis.
package verification

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"mpesa-forms/backend/internal/validation"
)

// GenerateCode returns a numeric code of validation.CodeLength digits (e.g. "042917").
// Uses crypto/rand for randomness.
func GenerateCode() (string, error) {
	b := make([]byte, validation.CodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := make([]byte, validation.CodeLength)
	for i := range s {
		s[i] = '0' + (b[i] % 10)
	}
	return string(s), nil
}

// HashCode returns the hex-encoded SHA-256 hash of code.
func HashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

// CodeEqual compares the hash of code with storedHash in constant time.
func CodeEqual(code, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashCode(code)), []byte(storedHash)) == 1
}
