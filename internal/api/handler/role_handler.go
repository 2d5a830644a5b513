package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type assignRoleRequest struct {
	IdentityID string `json:"identity_id" validate:"required"`
	RoleName   string `json:"role_name" validate:"required"`
}

// Create registers a new role name. Admin only.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body      createRoleRequest  true  "Role name"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/roles/create [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.CreateRole(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// Assign grants a registered role to an identity. Admin only. Tokens already
// issued keep their role snapshot; the grant shows up at next sign-in.
//
// @Summary      Assign a role to an identity
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body      assignRoleRequest  true  "Assignment"
// @Success      200   {object}  domain.Identity
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/roles/assign [post]
func (h *RoleHandler) Assign(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.roleService.AssignRole(c.Request().Context(), req.IdentityID, req.RoleName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// List returns the role registry. Admin only.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200  {array}  domain.Role
// @Security     BearerAuth
// @Router       /api/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}
