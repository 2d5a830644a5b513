package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type profileRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Bio         string `json:"bio" validate:"max=2000"`
	Interests   string `json:"interests" validate:"max=500"`
	Location    string `json:"location" validate:"max=200"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	PictureURL  string `json:"picture_url" validate:"omitempty,url"`
}

func (r *profileRequest) toInput() ports.ProfileInput {
	dob, _ := time.Parse("2006-01-02", r.DateOfBirth)
	return ports.ProfileInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Bio:         r.Bio,
		Interests:   r.Interests,
		Location:    r.Location,
		DateOfBirth: dob,
		PictureURL:  r.PictureURL,
	}
}

// Get returns the authenticated identity's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.Get(c.Request().Context(), identityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Create creates the authenticated identity's profile.
//
// @Summary      Create own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      201   {object}  domain.Profile
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/profile [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.Create(c.Request().Context(), identityID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, profile)
}

// Update replaces the authenticated identity's profile fields.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.Update(c.Request().Context(), identityID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete removes the authenticated identity's profile.
//
// @Summary      Delete own profile
// @Tags         profile
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	identityID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.profileService.Delete(c.Request().Context(), identityID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
