package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

// HobbyService manages the hobby catalog and the links identities keep to it.
type HobbyService struct {
	hobbies ports.HobbyRepository
}

func NewHobbyService(hobbies ports.HobbyRepository) *HobbyService {
	return &HobbyService{hobbies: hobbies}
}

func (s *HobbyService) List(ctx context.Context) ([]domain.Hobby, error) {
	return s.hobbies.List(ctx)
}

func (s *HobbyService) Get(ctx context.Context, id string) (*domain.Hobby, error) {
	return s.hobbies.FindByID(ctx, id)
}

func (s *HobbyService) Create(ctx context.Context, name string) (*domain.Hobby, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidHobby
	}
	hobby := &domain.Hobby{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	return s.hobbies.Insert(ctx, hobby)
}

func (s *HobbyService) Rename(ctx context.Context, id, name string) (*domain.Hobby, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidHobby
	}
	hobby, err := s.hobbies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hobby.Name = name
	if err := s.hobbies.Update(ctx, hobby); err != nil {
		return nil, err
	}
	return hobby, nil
}

func (s *HobbyService) Delete(ctx context.Context, id string) error {
	return s.hobbies.Delete(ctx, id)
}

// Link attaches a catalog hobby to the identity, overwriting any previous
// skill level or subscription flag for the same pair.
func (s *HobbyService) Link(ctx context.Context, identityID string, in ports.LinkHobbyInput) (*domain.IdentityHobby, error) {
	if !in.SkillLevel.IsValid() {
		return nil, domain.ErrInvalidSkill
	}
	if _, err := s.hobbies.FindByID(ctx, in.HobbyID); err != nil {
		if errors.Is(err, domain.ErrHobbyNotFound) {
			return nil, domain.ErrHobbyNotFound
		}
		return nil, err
	}

	link := &domain.IdentityHobby{
		ID:         uuid.NewString(),
		IdentityID: identityID,
		HobbyID:    in.HobbyID,
		SkillLevel: in.SkillLevel,
		Subscribed: in.Subscribed,
		CreatedAt:  time.Now().UTC(),
	}
	return s.hobbies.UpsertLink(ctx, link)
}

func (s *HobbyService) Links(ctx context.Context, identityID string) ([]domain.IdentityHobby, error) {
	return s.hobbies.ListLinks(ctx, identityID)
}

func (s *HobbyService) Unlink(ctx context.Context, identityID, hobbyID string) error {
	return s.hobbies.DeleteLink(ctx, identityID, hobbyID)
}
