package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// ctxUser extracts the user injected by the Session middleware and performs a
// fast-fail check before any service call: presence proves the middleware ran
// and the session resolved.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return user, nil
}
