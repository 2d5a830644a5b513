package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// RoleRepository persists the role registry. The unique index on name makes
// duplicate creation a store-level conflict rather than a read-then-write
// check.
type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	_, err := r.db.ExecContext(ctx,
		`insert into roles(id, name, created_at) values($1,$2,$3)`,
		role.ID, role.Name, role.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateRole
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx,
		`select id, name, created_at from roles where name=$1`, name,
	).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `select id, name, created_at from roles order by name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("list roles: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
