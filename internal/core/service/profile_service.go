package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

// ProfileService manages the profile record belonging to the authenticated
// identity. The identity id always comes from verified claims, never from the
// request body.
type ProfileService struct {
	profiles ports.ProfileRepository
}

func NewProfileService(profiles ports.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, identityID string) (*domain.Profile, error) {
	return s.profiles.FindByIdentity(ctx, identityID)
}

func (s *ProfileService) Create(ctx context.Context, identityID string, in ports.ProfileInput) (*domain.Profile, error) {
	if _, err := s.profiles.FindByIdentity(ctx, identityID); err == nil {
		return nil, domain.ErrProfileExists
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:          uuid.NewString(),
		IdentityID:  identityID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Bio:         in.Bio,
		Interests:   in.Interests,
		Location:    in.Location,
		DateOfBirth: in.DateOfBirth,
		PictureURL:  in.PictureURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.profiles.Insert(ctx, profile)
}

func (s *ProfileService) Update(ctx context.Context, identityID string, in ports.ProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.FindByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	profile.FirstName = strings.TrimSpace(in.FirstName)
	profile.LastName = strings.TrimSpace(in.LastName)
	profile.Bio = in.Bio
	profile.Interests = in.Interests
	profile.Location = in.Location
	profile.DateOfBirth = in.DateOfBirth
	profile.PictureURL = in.PictureURL
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Delete(ctx context.Context, identityID string) error {
	return s.profiles.Delete(ctx, identityID)
}
