package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

// AuthHandler handles sign-up, sign-in, session resolution and logout.
type AuthHandler struct {
	provisioning ports.ProvisioningService
	auth         ports.AuthService
	cookieName   string
}

func NewAuthHandler(provisioning ports.ProvisioningService, auth ports.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{provisioning: provisioning, auth: auth, cookieName: cookieName}
}

// SignUp provisions a new user end to end.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Personal profile"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, session, err := h.provisioning.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		DateOfBirth: req.DateOfBirth,
		SSN:         req.SSN,
	})
	if err != nil {
		return err
	}

	setSessionCookie(c, h.cookieName, session.Secret)
	return c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user)})
}

// SignIn authenticates a user and establishes a session cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, session, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, h.cookieName, session.Secret)
	return c.JSON(http.StatusOK, authResponse{User: toUserResponse(user)})
}

// Logout invalidates the session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		_ = h.auth.Logout(c.Request().Context(), cookie.Value)
	}
	clearSessionCookie(c, h.cookieName)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the user bound to the current session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: toUserResponse(user)})
}
