package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/auth"
)

// RBAC enforces role-based access control on top of the Auth middleware. The
// request passes when the verified claims carry at least one of the required
// roles; no claims at all is a 401 regardless of the required set.
func RBAC(requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*auth.Claims)

			switch err := auth.Authorize(claims, requiredRoles...); {
			case errors.Is(err, auth.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			case errors.Is(err, auth.ErrForbidden):
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
