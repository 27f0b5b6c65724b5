package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// setSessionCookie writes the platform session secret as a hardened cookie:
// fixed path, http-only, same-site strict, secure. No expiry is set; the
// session lives as long as the identity platform says it does.
func setSessionCookie(c echo.Context, name, secret string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    secret,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   true,
	})
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   true,
	})
}
