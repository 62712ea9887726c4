// Package security hashes and verifies M-Pesa PINs and account passwords with bcrypt.
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies secrets (PINs and passwords) using bcrypt. Callers must not log or
// persist plaintext secrets.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost, clamped to 4–31. Zero or negative
// selects bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of secret suitable for storage.
func (h *Hasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies secret against the stored hash using constant-time comparison. Returns nil if
// they match; returns an error (including bcrypt.ErrMismatchedHashAndPassword) if they do not or on
// invalid hash.
func (h *Hasher) Compare(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}

// Verify reports whether candidate matches the stored hash. An empty or malformed hash never
// matches.
func (h *Hasher) Verify(hash, candidate string) bool {
	if hash == "" {
		return false
	}
	return h.Compare(hash, candidate) == nil
}
