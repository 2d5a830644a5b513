package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

// EventService manages events and RSVP answers.
type EventService struct {
	events ports.EventRepository
}

func NewEventService(events ports.EventRepository) *EventService {
	return &EventService{events: events}
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, createdBy string, in ports.EventInput) (*domain.Event, error) {
	now := time.Now().UTC()
	if in.Date.Before(now) {
		return nil, domain.ErrEventInPast
	}
	event := &domain.Event{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Date:        in.Date.UTC(),
		Location:    in.Location,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.events.Insert(ctx, event)
}

func (s *EventService) Update(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	if in.Date.Before(time.Now().UTC()) {
		return nil, domain.ErrEventInPast
	}
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Name = strings.TrimSpace(in.Name)
	event.Description = in.Description
	event.Date = in.Date.UTC()
	event.Location = in.Location
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// RSVP records the identity's attendance answer for the event. Repeated
// answers overwrite the previous one.
func (s *EventService) RSVP(ctx context.Context, eventID, identityID string, status domain.RSVPStatus) (*domain.Participant, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidRSVP
	}
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	p := &domain.Participant{
		ID:         uuid.NewString(),
		EventID:    eventID,
		IdentityID: identityID,
		Status:     status,
		UpdatedAt:  time.Now().UTC(),
	}
	return s.events.UpsertParticipant(ctx, p)
}

func (s *EventService) Participants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.events.ListParticipants(ctx, eventID)
}
