package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

type stubEventRepo struct {
	mu           sync.Mutex
	events       map[string]*domain.Event
	participants map[string]*domain.Participant
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{
		events:       make(map[string]*domain.Event),
		participants: make(map[string]*domain.Participant),
	}
}

func (r *stubEventRepo) List(_ context.Context) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.events[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) Insert(_ context.Context, event *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *event
	r.events[event.ID] = &clone
	return event, nil
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) UpsertParticipant(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.participants[p.EventID+"/"+p.IdentityID] = &clone
	return p, nil
}

func (r *stubEventRepo) ListParticipants(_ context.Context, eventID string) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.participants {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func TestEventService_Create(t *testing.T) {
	svc := NewEventService(newStubEventRepo())

	event, err := svc.Create(context.Background(), "organiser-1", ports.EventInput{
		Name:     "  Badminton Night ",
		Date:     time.Now().UTC().Add(24 * time.Hour),
		Location: "Sports hall",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if event.Name != "Badminton Night" {
		t.Fatalf("expected trimmed name, got %q", event.Name)
	}
	if event.CreatedBy != "organiser-1" {
		t.Fatalf("unexpected creator: %q", event.CreatedBy)
	}
}

func TestEventService_Create_PastDate(t *testing.T) {
	svc := NewEventService(newStubEventRepo())

	_, err := svc.Create(context.Background(), "organiser-1", ports.EventInput{
		Name:     "Yesterday",
		Date:     time.Now().UTC().Add(-time.Hour),
		Location: "Nowhere",
	})
	if !errors.Is(err, domain.ErrEventInPast) {
		t.Fatalf("expected ErrEventInPast, got %v", err)
	}
}

func TestEventService_Update_PastDate(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo)

	event, err := svc.Create(context.Background(), "organiser-1", ports.EventInput{
		Name:     "Movie Night",
		Date:     time.Now().UTC().Add(24 * time.Hour),
		Location: "Cinema",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), event.ID, ports.EventInput{
		Name:     "Movie Night",
		Date:     time.Now().UTC().Add(-time.Hour),
		Location: "Cinema",
	})
	if !errors.Is(err, domain.ErrEventInPast) {
		t.Fatalf("expected ErrEventInPast, got %v", err)
	}

	// The stored event keeps its original date.
	stored, err := svc.Get(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !stored.Date.Equal(event.Date) {
		t.Fatalf("expected date unchanged, got %v", stored.Date)
	}
}

func TestEventService_RSVP(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo)

	event, err := svc.Create(context.Background(), "organiser-1", ports.EventInput{
		Name:     "Picnic",
		Date:     time.Now().UTC().Add(48 * time.Hour),
		Location: "Park",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	p, err := svc.RSVP(context.Background(), event.ID, "id-1", domain.RSVPMaybe)
	if err != nil {
		t.Fatalf("RSVP returned error: %v", err)
	}
	if p.Status != domain.RSVPMaybe {
		t.Fatalf("unexpected status: %q", p.Status)
	}

	// A second answer overwrites the first.
	if _, err := svc.RSVP(context.Background(), event.ID, "id-1", domain.RSVPGoing); err != nil {
		t.Fatalf("second RSVP failed: %v", err)
	}
	participants, err := svc.Participants(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("Participants failed: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("expected one participant, got %d", len(participants))
	}
	if participants[0].Status != domain.RSVPGoing {
		t.Fatalf("expected overwritten status, got %q", participants[0].Status)
	}
}

func TestEventService_RSVP_Invalid(t *testing.T) {
	svc := NewEventService(newStubEventRepo())

	if _, err := svc.RSVP(context.Background(), "ev-1", "id-1", "perhaps"); !errors.Is(err, domain.ErrInvalidRSVP) {
		t.Fatalf("expected ErrInvalidRSVP, got %v", err)
	}
	if _, err := svc.RSVP(context.Background(), "no-such-event", "id-1", domain.RSVPGoing); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
