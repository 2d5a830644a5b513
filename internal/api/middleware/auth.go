package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/verseyou/verse-api/internal/api/metrics"
	"github.com/verseyou/verse-api/internal/auth"
)

// Context keys set by the Auth middleware.
const (
	ClaimsKey     = "claims"
	IdentityIDKey = "identity_id"
)

// Auth validates the bearer token and injects the verified claims into the
// request context. Any verification failure is a generic 401; the precise
// reason only reaches the metrics and never the client.
func Auth(verifier *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1], time.Now().UTC())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ClaimsKey, claims)
			c.Set(IdentityIDKey, claims.IdentityID())

			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, auth.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, auth.ErrWrongAudience):
		return "wrong_audience"
	default:
		return "malformed"
	}
}
