package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// EventRepository persists events and their participants. RSVPs are upserted
// on the (event_id, identity_id) unique pair so answering twice overwrites
// the earlier answer.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`select id, name, description, date, location, created_by, created_at, updated_at
		 from events order by date`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.Location, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	err := r.db.QueryRowContext(ctx,
		`select id, name, description, date, location, created_by, created_at, updated_at
		 from events where id=$1`, id,
	).Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.Location, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) Insert(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	_, err := r.db.ExecContext(ctx,
		`insert into events(id, name, description, date, location, created_by, created_at, updated_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		event.ID, event.Name, event.Description, event.Date, event.Location,
		event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	res, err := r.db.ExecContext(ctx,
		`update events set name=$2, description=$3, date=$4, location=$5, updated_at=$6 where id=$1`,
		event.ID, event.Name, event.Description, event.Date, event.Location, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from events where id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) UpsertParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	_, err := r.db.ExecContext(ctx,
		`insert into event_participants(id, event_id, identity_id, status, updated_at)
		 values($1,$2,$3,$4,$5)
		 on conflict (event_id, identity_id)
		 do update set status=excluded.status, updated_at=excluded.updated_at`,
		p.ID, p.EventID, p.IdentityID, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert participant: %w", err)
	}
	return p, nil
}

func (r *EventRepository) ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	rows, err := r.db.QueryContext(ctx,
		`select id, event_id, identity_id, status, updated_at
		 from event_participants where event_id=$1 order by updated_at`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.IdentityID, &p.Status, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list participants: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
