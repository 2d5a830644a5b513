package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// HobbyRepository persists the hobby catalog and identity↔hobby links.
// Links are upserted on the (identity_id, hobby_id) unique pair so a repeated
// link refreshes the skill grade instead of failing.
type HobbyRepository struct {
	db *sql.DB
}

func NewHobbyRepository(db *sql.DB) *HobbyRepository {
	return &HobbyRepository{db: db}
}

func (r *HobbyRepository) List(ctx context.Context) ([]domain.Hobby, error) {
	rows, err := r.db.QueryContext(ctx, `select id, name, created_at from hobbies order by name`)
	if err != nil {
		return nil, fmt.Errorf("list hobbies: %w", err)
	}
	defer rows.Close()

	var hobbies []domain.Hobby
	for rows.Next() {
		var h domain.Hobby
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("list hobbies: %w", err)
		}
		hobbies = append(hobbies, h)
	}
	return hobbies, rows.Err()
}

func (r *HobbyRepository) FindByID(ctx context.Context, id string) (*domain.Hobby, error) {
	var h domain.Hobby
	err := r.db.QueryRowContext(ctx,
		`select id, name, created_at from hobbies where id=$1`, id,
	).Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHobbyNotFound
		}
		return nil, fmt.Errorf("find hobby: %w", err)
	}
	return &h, nil
}

func (r *HobbyRepository) Insert(ctx context.Context, hobby *domain.Hobby) (*domain.Hobby, error) {
	_, err := r.db.ExecContext(ctx,
		`insert into hobbies(id, name, created_at) values($1,$2,$3)`,
		hobby.ID, hobby.Name, hobby.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateHobby
		}
		return nil, fmt.Errorf("insert hobby: %w", err)
	}
	return hobby, nil
}

func (r *HobbyRepository) Update(ctx context.Context, hobby *domain.Hobby) error {
	res, err := r.db.ExecContext(ctx,
		`update hobbies set name=$2 where id=$1`, hobby.ID, hobby.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateHobby
		}
		return fmt.Errorf("update hobby: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrHobbyNotFound
	}
	return nil
}

func (r *HobbyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from hobbies where id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete hobby: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrHobbyNotFound
	}
	return nil
}

func (r *HobbyRepository) UpsertLink(ctx context.Context, link *domain.IdentityHobby) (*domain.IdentityHobby, error) {
	_, err := r.db.ExecContext(ctx,
		`insert into identity_hobbies(id, identity_id, hobby_id, skill_level, subscribed, created_at)
		 values($1,$2,$3,$4,$5,$6)
		 on conflict (identity_id, hobby_id)
		 do update set skill_level=excluded.skill_level, subscribed=excluded.subscribed`,
		link.ID, link.IdentityID, link.HobbyID, link.SkillLevel, link.Subscribed, link.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert hobby link: %w", err)
	}
	return link, nil
}

func (r *HobbyRepository) ListLinks(ctx context.Context, identityID string) ([]domain.IdentityHobby, error) {
	rows, err := r.db.QueryContext(ctx,
		`select id, identity_id, hobby_id, skill_level, subscribed, created_at
		 from identity_hobbies where identity_id=$1 order by created_at`, identityID)
	if err != nil {
		return nil, fmt.Errorf("list hobby links: %w", err)
	}
	defer rows.Close()

	var links []domain.IdentityHobby
	for rows.Next() {
		var l domain.IdentityHobby
		if err := rows.Scan(&l.ID, &l.IdentityID, &l.HobbyID, &l.SkillLevel, &l.Subscribed, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("list hobby links: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *HobbyRepository) DeleteLink(ctx context.Context, identityID, hobbyID string) error {
	res, err := r.db.ExecContext(ctx,
		`delete from identity_hobbies where identity_id=$1 and hobby_id=$2`, identityID, hobbyID)
	if err != nil {
		return fmt.Errorf("delete hobby link: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrHobbyNotLinked
	}
	return nil
}
