package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List returns all events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {array}  domain.Event
// @Security     BearerAuth
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get returns a single event.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Create adds a new event. Organiser or admin only.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      eventRequest  true  "Event fields"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Create(c.Request().Context(), identityID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Update replaces an event's fields. Organiser or admin only.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Event id"
// @Param        body  body      eventRequest  true  "Event fields"
// @Success      200   {object}  domain.Event
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete removes an event. Organiser or admin only.
//
// @Summary      Delete an event
// @Tags         events
// @Param        id  path  string  true  "Event id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RSVP records the caller's attendance answer for an event.
//
// @Summary      RSVP to an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Event id"
// @Param        body  body      rsvpRequest  true  "RSVP answer"
// @Success      200   {object}  domain.Participant
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/events/{id}/rsvp [post]
func (h *EventHandler) RSVP(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req rsvpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.eventService.RSVP(c.Request().Context(), c.Param("id"), identityID, domain.RSVPStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Participants lists the RSVP answers for an event.
//
// @Summary      List event participants
// @Tags         events
// @Produce      json
// @Param        id   path     string  true  "Event id"
// @Success      200  {array}  domain.Participant
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/events/{id}/participants [get]
func (h *EventHandler) Participants(c echo.Context) error {
	participants, err := h.eventService.Participants(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, participants)
}
