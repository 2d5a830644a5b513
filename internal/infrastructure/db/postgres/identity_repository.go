package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// IdentityRepository persists identities in the identities table with the
// role set in identity_roles. The unique index on email closes the
// concurrent duplicate sign-up race at the store level.
type IdentityRepository struct {
	db *sql.DB
}

func NewIdentityRepository(db *sql.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Insert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`insert into identities(id, email, password_hash, created_at, updated_at) values($1,$2,$3,$4,$5)`,
		identity.ID, identity.Email, identity.PasswordHash, identity.CreatedAt, identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	for _, role := range identity.Roles {
		if _, err := tx.ExecContext(ctx,
			`insert into identity_roles(identity_id, role) values($1,$2) on conflict do nothing`,
			identity.ID, role,
		); err != nil {
			return nil, fmt.Errorf("insert identity role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return identity, nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.findOne(ctx, `select id, email, password_hash, created_at, updated_at from identities where email=$1`, email)
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	return r.findOne(ctx, `select id, email, password_hash, created_at, updated_at from identities where id=$1`, id)
}

func (r *IdentityRepository) findOne(ctx context.Context, query, arg string) (*domain.Identity, error) {
	var identity domain.Identity
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&identity.ID, &identity.Email, &identity.PasswordHash, &identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}

	roles, err := r.loadRoles(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	identity.Roles = roles
	return &identity, nil
}

func (r *IdentityRepository) loadRoles(ctx context.Context, identityID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`select role from identity_roles where identity_id=$1 order by role`, identityID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("load roles: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// UpdateRoles replaces the identity's role set atomically.
func (r *IdentityRepository) UpdateRoles(ctx context.Context, id string, roles []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update roles: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `update identities set updated_at=now() where id=$1`, id)
	if err != nil {
		return fmt.Errorf("update roles: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrIdentityNotFound
	}

	if _, err := tx.ExecContext(ctx, `delete from identity_roles where identity_id=$1`, id); err != nil {
		return fmt.Errorf("update roles: %w", err)
	}
	for _, role := range domain.NormalizeRoles(roles) {
		if _, err := tx.ExecContext(ctx,
			`insert into identity_roles(identity_id, role) values($1,$2)`, id, role,
		); err != nil {
			return fmt.Errorf("update roles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update roles: %w", err)
	}
	return nil
}
