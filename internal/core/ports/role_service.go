package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// RoleService covers the administrative role operations.
type RoleService interface {
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	AssignRole(ctx context.Context, identityID, roleName string) (*domain.Identity, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
}
