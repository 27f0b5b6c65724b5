package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the closed error taxonomy to deterministic HTTP status codes.
//   - Passes classified platform errors through with their platform-prefixed
//     message.
//   - Logs everything unclassified without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrBankAlreadyLinked):
		return http.StatusConflict, "bank account already linked"
	case errors.Is(err, domain.ErrAccountCreation):
		return http.StatusBadGateway, "error creating user account"
	case errors.Is(err, domain.ErrBankNotFound):
		return http.StatusNotFound, "bank account link not found"
	}

	// Field-level platform validation → unprocessable, message passed through.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error()
	}

	// Classified but otherwise unhandled platform failure → bad gateway.
	var pe *domain.PlatformError
	if errors.As(err, &pe) {
		log.Warn().Err(err).Str("platform", pe.Platform).Int("code", pe.Code).Msg("platform error surfaced")
		return http.StatusBadGateway, pe.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
