// Package auth holds the credential and token primitives: password hashing,
// JWT issuance and verification, and the role-based authorization gate.
// Everything here is a pure computation over its inputs plus process-wide
// configuration; no store or network access happens below this boundary.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword is returned when asked to hash a zero-length password.
	ErrEmptyPassword = errors.New("password is empty")
	// ErrCorruptHash is returned when a stored hash cannot be parsed as
	// bcrypt output. It is distinct from a plain mismatch so callers can
	// tell bad data from bad credentials.
	ErrCorruptHash = errors.New("stored password hash is corrupt")
)

// Hasher wraps bcrypt with a fixed cost. The cost is the deliberate slow
// path that makes offline brute force expensive; any replacement algorithm
// must keep an equivalent work factor.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash produces a salted one-way hash of plaintext. Two calls with the same
// input never yield the same output.
func (h Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A stored value
// that is not valid bcrypt output yields ErrCorruptHash, never a silent
// false.
func (h Hasher) Verify(plaintext, stored string) (bool, error) {
	if stored == "" {
		return false, ErrCorruptHash
	}
	if _, err := bcrypt.Cost([]byte(stored)); err != nil {
		return false, ErrCorruptHash
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrCorruptHash
	}
}
