package domain

import (
	"errors"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// Profile holds the public-facing details attached to an identity.
// At most one profile exists per identity.
type Profile struct {
	ID          string    `json:"id"`
	IdentityID  string    `json:"identity_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Bio         string    `json:"bio,omitempty"`
	Interests   string    `json:"interests,omitempty"`
	Location    string    `json:"location,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth,omitempty"`
	PictureURL  string    `json:"picture_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
