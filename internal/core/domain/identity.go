package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleOrganiser = "organiser"
	RoleUser      = "user"
)

// DefaultRole is granted to every identity created through sign-up.
const DefaultRole = RoleUser

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet the minimum length")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// Identity is the persisted account record. Email is unique across all
// identities; PasswordHash never holds plaintext; Roles is a normalized set.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the identity carries the given role name.
func (i *Identity) HasRole(name string) bool {
	name = NormalizeRole(name)
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// NormalizeRole lower-cases and trims a role name. An empty result means the
// name was invalid.
func NormalizeRole(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeRoles normalizes every name and drops empties and duplicates,
// preserving first-seen order.
func NormalizeRoles(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = NormalizeRole(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
