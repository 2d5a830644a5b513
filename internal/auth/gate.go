package auth

import (
	"errors"

	"github.com/verseyou/verse-api/internal/core/domain"
)

var (
	// ErrUnauthenticated means no verified claims were presented at all.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden means the identity is valid but lacks a required role.
	ErrForbidden = errors.New("insufficient role")
)

// Authorize gates a request on the caller's role snapshot. A nil Claims is
// always ErrUnauthenticated, checked before any role matching. With an empty
// required set, any authenticated identity passes. Otherwise at least one of
// the claims' roles must appear in required.
func Authorize(claims *Claims, required ...string) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if len(required) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(required))
	for _, r := range required {
		allowed[domain.NormalizeRole(r)] = struct{}{}
	}
	for _, r := range claims.Roles {
		if _, ok := allowed[domain.NormalizeRole(r)]; ok {
			return nil
		}
	}
	return ErrForbidden
}
