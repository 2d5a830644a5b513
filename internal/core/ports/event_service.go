package ports

import (
	"context"
	"time"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// EventInput carries the editable event fields.
type EventInput struct {
	Name        string
	Description string
	Date        time.Time
	Location    string
}

// EventService manages events and RSVP answers.
type EventService interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, createdBy string, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error

	RSVP(ctx context.Context, eventID, identityID string, status domain.RSVPStatus) (*domain.Participant, error)
	Participants(ctx context.Context, eventID string) ([]domain.Participant, error)
}
