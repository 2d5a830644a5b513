package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// RoleRepository is the role registry. Names are stored case-normalized and
// unique.
type RoleRepository interface {
	Insert(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}
