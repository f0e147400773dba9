package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost balances hashing latency against brute-force resistance.
const DefaultCost = 12

// Hasher hashes and verifies secrets with a slow salted one-way function.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher backed by bcrypt. Costs outside bcrypt's range fall back to DefaultCost.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify is constant time with respect to the secret; a malformed digest never matches.
func (h *bcryptHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
