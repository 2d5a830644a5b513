package domain

import (
	"errors"
	"time"
)

// SkillLevel grades how experienced an identity is at a hobby.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// IsValid reports whether the skill level is one of the known grades.
func (s SkillLevel) IsValid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

var (
	ErrHobbyNotFound  = errors.New("hobby not found")
	ErrInvalidHobby   = errors.New("invalid hobby name")
	ErrDuplicateHobby = errors.New("hobby already exists")
	ErrInvalidSkill   = errors.New("invalid skill level")
	ErrHobbyNotLinked = errors.New("hobby not linked to identity")
)

// Hobby is a catalog entry identities can link themselves to.
type Hobby struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityHobby links an identity to a hobby with a skill grade and an
// event-notification subscription flag.
type IdentityHobby struct {
	ID         string     `json:"id"`
	IdentityID string     `json:"identity_id"`
	HobbyID    string     `json:"hobby_id"`
	SkillLevel SkillLevel `json:"skill_level"`
	Subscribed bool       `json:"subscribed"`
	CreatedAt  time.Time  `json:"created_at"`
}
