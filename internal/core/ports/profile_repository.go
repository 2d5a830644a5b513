package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// ProfileRepository persists the one-per-identity profile records.
type ProfileRepository interface {
	FindByIdentity(ctx context.Context, identityID string) (*domain.Profile, error)
	Insert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, identityID string) error
}
