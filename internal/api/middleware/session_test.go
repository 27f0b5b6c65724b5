package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

const cookieName = "horizon-session"

type stubAuth struct {
	currentUserFn func(sessionSecret string) (*domain.User, error)
}

func (s *stubAuth) SignIn(context.Context, string, string) (*domain.User, *domain.Session, error) {
	return nil, nil, errors.New("not used")
}

func (s *stubAuth) CurrentUser(_ context.Context, sessionSecret string) (*domain.User, error) {
	return s.currentUserFn(sessionSecret)
}

func (s *stubAuth) Logout(context.Context, string) error { return nil }

func run(t *testing.T, auth *stubAuth, cookie *http.Cookie) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true
		return nil
	}

	err := Session(cookieName, auth)(next)(c)
	return c, err, nextCalled
}

func TestSession_MissingCookie(t *testing.T) {
	auth := &stubAuth{currentUserFn: func(string) (*domain.User, error) {
		t.Fatal("no platform call expected without a cookie")
		return nil, nil
	}}

	_, err, nextCalled := run(t, auth, nil)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if nextCalled {
		t.Fatalf("handler must not run without a session")
	}
}

func TestSession_UnresolvableSession(t *testing.T) {
	auth := &stubAuth{currentUserFn: func(string) (*domain.User, error) {
		return nil, nil
	}}

	_, err, nextCalled := run(t, auth, &http.Cookie{Name: cookieName, Value: "stale-secret"})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unresolvable session, got %v", err)
	}
	if nextCalled {
		t.Fatalf("handler must not run for an unresolvable session")
	}
}

func TestSession_InjectsUserAndSecret(t *testing.T) {
	auth := &stubAuth{currentUserFn: func(secret string) (*domain.User, error) {
		if secret != "sess-secret" {
			t.Fatalf("unexpected secret %q", secret)
		}
		return &domain.User{ID: "user_1", AccountID: "acc_1"}, nil
	}}

	c, err, nextCalled := run(t, auth, &http.Cookie{Name: cookieName, Value: "sess-secret"})
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !nextCalled {
		t.Fatalf("handler must run for a valid session")
	}

	user, _ := c.Get("user").(*domain.User)
	if user == nil || user.ID != "user_1" {
		t.Fatalf("expected user in context, got %+v", user)
	}
	if secret, _ := c.Get("session_secret").(string); secret != "sess-secret" {
		t.Fatalf("expected session secret in context, got %q", secret)
	}
}
