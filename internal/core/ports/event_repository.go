package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// EventRepository persists events and their participants.
type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	Insert(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error

	UpsertParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
	ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error)
}
