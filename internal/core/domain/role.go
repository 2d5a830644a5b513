package domain

import (
	"errors"
	"time"
)

var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrDuplicateRole = errors.New("role already exists")
	ErrInvalidRole   = errors.New("invalid role name")
)

// Role is an entry in the role registry. Names are case-normalized and unique.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
