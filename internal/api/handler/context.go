package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/api/middleware"
)

// ctxIdentity extracts the authenticated identity id injected by the Auth
// middleware. Its presence proves the middleware ran; absence means the route
// was wired without authentication and must not proceed.
func ctxIdentity(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.IdentityIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
