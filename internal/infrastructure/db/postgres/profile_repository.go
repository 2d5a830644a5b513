package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// ProfileRepository persists profile records, one per identity. The unique
// index on identity_id enforces the one-profile invariant.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByIdentity(ctx context.Context, identityID string) (*domain.Profile, error) {
	var p domain.Profile
	var dob sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`select id, identity_id, first_name, last_name, bio, interests, location, date_of_birth, picture_url, created_at, updated_at
		 from profiles where identity_id=$1`, identityID,
	).Scan(&p.ID, &p.IdentityID, &p.FirstName, &p.LastName, &p.Bio, &p.Interests, &p.Location, &dob, &p.PictureURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if dob.Valid {
		p.DateOfBirth = dob.Time
	}
	return &p, nil
}

func (r *ProfileRepository) Insert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	_, err := r.db.ExecContext(ctx,
		`insert into profiles(id, identity_id, first_name, last_name, bio, interests, location, date_of_birth, picture_url, created_at, updated_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		profile.ID, profile.IdentityID, profile.FirstName, profile.LastName,
		profile.Bio, profile.Interests, profile.Location, nullTime(profile.DateOfBirth),
		profile.PictureURL, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`update profiles
		 set first_name=$2, last_name=$3, bio=$4, interests=$5, location=$6, date_of_birth=$7, picture_url=$8, updated_at=$9
		 where identity_id=$1`,
		profile.IdentityID, profile.FirstName, profile.LastName,
		profile.Bio, profile.Interests, profile.Location, nullTime(profile.DateOfBirth),
		profile.PictureURL, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, identityID string) error {
	res, err := r.db.ExecContext(ctx, `delete from profiles where identity_id=$1`, identityID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
