package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// IdentityRepository is the credential store consumed by the authentication
// core. Implementations must enforce email uniqueness at the storage level so
// concurrent duplicate sign-ups cannot both succeed.
type IdentityRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Insert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	UpdateRoles(ctx context.Context, id string, roles []string) error
}
