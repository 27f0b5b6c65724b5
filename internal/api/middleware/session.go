package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

// Session resolves the session cookie to a user and injects it into the echo
// context. Requests without a resolvable session are rejected with 401; the
// best-effort CurrentUser lookup means a dead platform looks identical to a
// dead session here, which is the intended failure mode for protected routes.
func Session(cookieName string, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			user, err := auth.CurrentUser(c.Request().Context(), cookie.Value)
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set("user", user)
			c.Set("session_secret", cookie.Value)

			return next(c)
		}
	}
}
