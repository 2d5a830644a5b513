package domain

import (
	"errors"
	"time"
)

// RSVPStatus is an identity's declared attendance for an event.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPNotGoing RSVPStatus = "not_going"
)

// IsValid reports whether the status is one of the known RSVP answers.
func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPGoing, RSVPMaybe, RSVPNotGoing:
		return true
	}
	return false
}

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidRSVP   = errors.New("invalid rsvp status")
	ErrEventInPast   = errors.New("event date is in the past")
)

// Event is a gathering identities can RSVP to.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Participant records one identity's RSVP for one event. The (event,
// identity) pair is unique; a repeated RSVP overwrites the previous answer.
type Participant struct {
	ID         string     `json:"id"`
	EventID    string     `json:"event_id"`
	IdentityID string     `json:"identity_id"`
	Status     RSVPStatus `json:"status"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
