package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// LinkHobbyInput carries an identity's relation to a catalog hobby.
type LinkHobbyInput struct {
	HobbyID    string
	SkillLevel domain.SkillLevel
	Subscribed bool
}

// HobbyService manages the hobby catalog and per-identity hobby links.
type HobbyService interface {
	List(ctx context.Context) ([]domain.Hobby, error)
	Get(ctx context.Context, id string) (*domain.Hobby, error)
	Create(ctx context.Context, name string) (*domain.Hobby, error)
	Rename(ctx context.Context, id, name string) (*domain.Hobby, error)
	Delete(ctx context.Context, id string) error

	Link(ctx context.Context, identityID string, in LinkHobbyInput) (*domain.IdentityHobby, error)
	Links(ctx context.Context, identityID string) ([]domain.IdentityHobby, error)
	Unlink(ctx context.Context, identityID, hobbyID string) error
}
