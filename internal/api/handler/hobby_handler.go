package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

type HobbyHandler struct {
	hobbyService ports.HobbyService
}

func NewHobbyHandler(hobbyService ports.HobbyService) *HobbyHandler {
	return &HobbyHandler{hobbyService: hobbyService}
}

type hobbyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type linkHobbyRequest struct {
	HobbyID    string `json:"hobby_id" validate:"required"`
	SkillLevel string `json:"skill_level" validate:"required,oneof=beginner intermediate advanced"`
	Subscribed bool   `json:"subscribed"`
}

// List returns the hobby catalog.
//
// @Summary      List hobbies
// @Tags         hobbies
// @Produce      json
// @Success      200  {array}  domain.Hobby
// @Security     BearerAuth
// @Router       /api/hobbies [get]
func (h *HobbyHandler) List(c echo.Context) error {
	hobbies, err := h.hobbyService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hobbies)
}

// Get returns a single catalog hobby.
//
// @Summary      Get a hobby
// @Tags         hobbies
// @Produce      json
// @Param        id   path      string  true  "Hobby id"
// @Success      200  {object}  domain.Hobby
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/hobbies/{id} [get]
func (h *HobbyHandler) Get(c echo.Context) error {
	hobby, err := h.hobbyService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hobby)
}

// Create adds a hobby to the catalog. Organiser or admin only.
//
// @Summary      Create a hobby
// @Tags         hobbies
// @Accept       json
// @Produce      json
// @Param        body  body      hobbyRequest  true  "Hobby name"
// @Success      201   {object}  domain.Hobby
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/hobbies [post]
func (h *HobbyHandler) Create(c echo.Context) error {
	var req hobbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hobby, err := h.hobbyService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hobby)
}

// Update renames a catalog hobby. Organiser or admin only.
//
// @Summary      Rename a hobby
// @Tags         hobbies
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Hobby id"
// @Param        body  body      hobbyRequest  true  "New name"
// @Success      200   {object}  domain.Hobby
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/hobbies/{id} [put]
func (h *HobbyHandler) Update(c echo.Context) error {
	var req hobbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hobby, err := h.hobbyService.Rename(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hobby)
}

// Delete removes a catalog hobby. Organiser or admin only.
//
// @Summary      Delete a hobby
// @Tags         hobbies
// @Param        id  path  string  true  "Hobby id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/hobbies/{id} [delete]
func (h *HobbyHandler) Delete(c echo.Context) error {
	if err := h.hobbyService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Link attaches a hobby to the authenticated identity with a skill grade.
//
// @Summary      Link a hobby to own account
// @Tags         hobbies
// @Accept       json
// @Produce      json
// @Param        body  body      linkHobbyRequest  true  "Link details"
// @Success      200   {object}  domain.IdentityHobby
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/hobbies/mine [post]
func (h *HobbyHandler) Link(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req linkHobbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.hobbyService.Link(c.Request().Context(), identityID, ports.LinkHobbyInput{
		HobbyID:    req.HobbyID,
		SkillLevel: domain.SkillLevel(req.SkillLevel),
		Subscribed: req.Subscribed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, link)
}

// Links lists the authenticated identity's hobby links.
//
// @Summary      List own hobby links
// @Tags         hobbies
// @Produce      json
// @Success      200  {array}  domain.IdentityHobby
// @Security     BearerAuth
// @Router       /api/hobbies/mine [get]
func (h *HobbyHandler) Links(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	links, err := h.hobbyService.Links(c.Request().Context(), identityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}

// Unlink detaches a hobby from the authenticated identity.
//
// @Summary      Unlink a hobby from own account
// @Tags         hobbies
// @Param        id  path  string  true  "Hobby id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/hobbies/mine/{id} [delete]
func (h *HobbyHandler) Unlink(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.hobbyService.Unlink(c.Request().Context(), identityID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
