package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

// BankHandler handles institution linking and bank-link queries.
type BankHandler struct {
	banks ports.BankService
}

func NewBankHandler(banks ports.BankService) *BankHandler {
	return &BankHandler{banks: banks}
}

// CreateLinkToken mints a temporary link token for the current user.
//
// @Summary      Create a link token
// @Tags         banks
// @Produce      json
// @Success      200  {object}  linkTokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/link/token [post]
func (h *BankHandler) CreateLinkToken(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	token, err := h.banks.CreateLinkToken(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, linkTokenResponse{LinkToken: token})
}

// Exchange swaps a public token for a persisted bank link.
//
// @Summary      Exchange a public token
// @Tags         banks
// @Accept       json
// @Produce      json
// @Param        body  body      exchangeRequest  true  "Public token"
// @Success      200   {object}  exchangeResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/link/exchange [post]
func (h *BankHandler) Exchange(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req exchangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.banks.ExchangePublicToken(c.Request().Context(), req.PublicToken, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exchangeResponse{PublicTokenExchange: "complete"})
}

// List returns the current user's bank links.
//
// @Summary      List linked banks
// @Tags         banks
// @Produce      json
// @Success      200  {object}  listBanksResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/banks [get]
func (h *BankHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	links, err := h.banks.GetBanks(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	resp := listBanksResponse{Data: make([]bankResponse, 0, len(links))}
	for i := range links {
		resp.Data = append(resp.Data, toBankResponse(&links[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns one bank link by document ID. Best-effort lookup: absence is a
// plain 404.
//
// @Summary      Get a linked bank
// @Tags         banks
// @Produce      json
// @Param        id   path      string  true  "Bank link document ID"
// @Success      200  {object}  bankResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/banks/{id} [get]
func (h *BankHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	link, err := h.banks.GetBank(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if link == nil || link.UserID != user.ID {
		return echo.NewHTTPError(http.StatusNotFound, "bank account link not found")
	}
	return c.JSON(http.StatusOK, toBankResponse(link))
}
