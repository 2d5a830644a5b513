package ports

import (
	"context"
	"time"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FirstName   string
	LastName    string
	Bio         string
	Interests   string
	Location    string
	DateOfBirth time.Time
	PictureURL  string
}

// ProfileService manages the profile attached to the authenticated identity.
type ProfileService interface {
	Get(ctx context.Context, identityID string) (*domain.Profile, error)
	Create(ctx context.Context, identityID string, in ProfileInput) (*domain.Profile, error)
	Update(ctx context.Context, identityID string, in ProfileInput) (*domain.Profile, error)
	Delete(ctx context.Context, identityID string) error
}
