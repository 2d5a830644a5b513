package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// HobbyRepository persists the hobby catalog and the identity↔hobby links.
type HobbyRepository interface {
	List(ctx context.Context) ([]domain.Hobby, error)
	FindByID(ctx context.Context, id string) (*domain.Hobby, error)
	Insert(ctx context.Context, hobby *domain.Hobby) (*domain.Hobby, error)
	Update(ctx context.Context, hobby *domain.Hobby) error
	Delete(ctx context.Context, id string) error

	UpsertLink(ctx context.Context, link *domain.IdentityHobby) (*domain.IdentityHobby, error)
	ListLinks(ctx context.Context, identityID string) ([]domain.IdentityHobby, error)
	DeleteLink(ctx context.Context, identityID, hobbyID string) error
}
