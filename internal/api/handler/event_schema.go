package handler

import (
	"time"

	"github.com/verseyou/verse-api/internal/core/ports"
)

type eventRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=300"`
}

func (r *eventRequest) toInput() ports.EventInput {
	return ports.EventInput{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
	}
}

type rsvpRequest struct {
	Status string `json:"status" validate:"required,oneof=going maybe not_going"`
}
