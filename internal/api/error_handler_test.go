package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-up", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_TaxonomyMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "email already registered"},
		{"bank already linked", domain.ErrBankAlreadyLinked, http.StatusConflict, "bank account already linked"},
		{"account creation", domain.ErrAccountCreation, http.StatusBadGateway, "error creating user account"},
		{"bank not found", domain.ErrBankNotFound, http.StatusNotFound, "bank account link not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := render(t, tc.err)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantMsg) {
				t.Fatalf("expected %q in body %s", tc.wantMsg, rec.Body.String())
			}
		})
	}
}

func TestErrorHandler_WrappedTaxonomyErrorStillMaps(t *testing.T) {
	rec := render(t, errors.Join(errors.New("context"), domain.ErrEmailExists))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for wrapped taxonomy error, got %d", rec.Code)
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	rec := render(t, &domain.ValidationError{
		Platform: "PAYMENTS",
		Message:  "validation error(s) present",
		Fields:   map[string]string{"/dateOfBirth": "must be a valid date"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PAYMENTS") {
		t.Fatalf("expected platform in message: %s", rec.Body.String())
	}
}

func TestErrorHandler_PlatformError(t *testing.T) {
	rec := render(t, &domain.PlatformError{Platform: "AGGREGATOR", Code: 500, Message: "internal failure"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AGGREGATOR_ERROR") {
		t.Fatalf("expected platform-prefixed message: %s", rec.Body.String())
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid payload") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestErrorHandler_UnclassifiedErrorHidesDetails(t *testing.T) {
	rec := render(t, errors.New("pq: secret connection string leaked"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret connection string") {
		t.Fatalf("internal details must not leak: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("expected generic message: %s", rec.Body.String())
	}
}
