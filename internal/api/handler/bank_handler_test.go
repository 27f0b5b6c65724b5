package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

type stubBankService struct {
	createLinkTokenFn func(user *domain.User) (string, error)
	exchangeFn        func(publicToken string, user *domain.User) (*domain.BankAccountLink, error)
	getBanksFn        func(userID string) ([]domain.BankAccountLink, error)
	getBankFn         func(id string) (*domain.BankAccountLink, error)
	getByAccountFn    func(accountID string) (*domain.BankAccountLink, error)
}

func (s *stubBankService) CreateLinkToken(_ context.Context, user *domain.User) (string, error) {
	if s.createLinkTokenFn == nil {
		return "link-token-1", nil
	}
	return s.createLinkTokenFn(user)
}

func (s *stubBankService) ExchangePublicToken(_ context.Context, publicToken string, user *domain.User) (*domain.BankAccountLink, error) {
	if s.exchangeFn == nil {
		return testBankLink(), nil
	}
	return s.exchangeFn(publicToken, user)
}

func (s *stubBankService) GetBanks(_ context.Context, userID string) ([]domain.BankAccountLink, error) {
	if s.getBanksFn == nil {
		return nil, nil
	}
	return s.getBanksFn(userID)
}

func (s *stubBankService) GetBank(_ context.Context, id string) (*domain.BankAccountLink, error) {
	if s.getBankFn == nil {
		return nil, nil
	}
	return s.getBankFn(id)
}

func (s *stubBankService) GetBankByAccountID(_ context.Context, accountID string) (*domain.BankAccountLink, error) {
	if s.getByAccountFn == nil {
		return nil, nil
	}
	return s.getByAccountFn(accountID)
}

func testBankLink() *domain.BankAccountLink {
	return &domain.BankAccountLink{
		ID:               "bank_1",
		UserID:           "user_1",
		ItemID:           "item-1",
		AccountID:        "ext-acct-1",
		AccessToken:      "access-1",
		FundingSourceURL: "https://api.payments.example.com/funding-sources/fs_1",
		ShareableID:      "sealed-ext-acct-1",
		CreatedAt:        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCreateLinkToken_RequiresSession(t *testing.T) {
	h := NewBankHandler(&stubBankService{})
	c, _ := newTestContext(t, http.MethodPost, "/v1/link/token", "")

	err := h.CreateLinkToken(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestCreateLinkToken_ReturnsToken(t *testing.T) {
	h := NewBankHandler(&stubBankService{})
	c, rec := newTestContext(t, http.MethodPost, "/v1/link/token", "")
	c.Set("user", testUser())

	if err := h.CreateLinkToken(c); err != nil {
		t.Fatalf("CreateLinkToken returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"link_token":"link-token-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestExchange_Success(t *testing.T) {
	var gotToken string
	svc := &stubBankService{
		exchangeFn: func(publicToken string, _ *domain.User) (*domain.BankAccountLink, error) {
			gotToken = publicToken
			return testBankLink(), nil
		},
	}
	h := NewBankHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/v1/link/exchange", `{"public_token":"public-1"}`)
	c.Set("user", testUser())

	if err := h.Exchange(c); err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if gotToken != "public-1" {
		t.Fatalf("expected public token forwarded, got %q", gotToken)
	}
	if !strings.Contains(rec.Body.String(), `"public_token_exchange":"complete"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestExchange_MissingToken(t *testing.T) {
	h := NewBankHandler(&stubBankService{})
	c, _ := newTestContext(t, http.MethodPost, "/v1/link/exchange", `{}`)
	c.Set("user", testUser())

	err := h.Exchange(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing public_token, got %v", err)
	}
}

func TestExchange_DuplicatePassesThrough(t *testing.T) {
	svc := &stubBankService{
		exchangeFn: func(string, *domain.User) (*domain.BankAccountLink, error) {
			return nil, domain.ErrBankAlreadyLinked
		},
	}
	h := NewBankHandler(svc)
	c, _ := newTestContext(t, http.MethodPost, "/v1/link/exchange", `{"public_token":"public-1"}`)
	c.Set("user", testUser())

	if err := h.Exchange(c); !errors.Is(err, domain.ErrBankAlreadyLinked) {
		t.Fatalf("expected ErrBankAlreadyLinked, got %v", err)
	}
}

func TestList_EmptyIsAnEmptyArray(t *testing.T) {
	h := NewBankHandler(&stubBankService{})
	c, rec := newTestContext(t, http.MethodGet, "/v1/banks", "")
	c.Set("user", testUser())

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestList_SerializesLinksWithoutAccessToken(t *testing.T) {
	svc := &stubBankService{
		getBanksFn: func(string) ([]domain.BankAccountLink, error) {
			return []domain.BankAccountLink{*testBankLink()}, nil
		},
	}
	h := NewBankHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/v1/banks", "")
	c.Set("user", testUser())

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"shareable_id":"sealed-ext-acct-1"`) {
		t.Fatalf("expected shareable id in body: %s", body)
	}
	if strings.Contains(body, "access-1") {
		t.Fatalf("access token must never be serialized: %s", body)
	}
}

func TestGet_AbsenceIsNotFound(t *testing.T) {
	h := NewBankHandler(&stubBankService{})
	c, _ := newTestContext(t, http.MethodGet, "/v1/banks/bank_404", "")
	c.Set("user", testUser())
	c.SetParamNames("id")
	c.SetParamValues("bank_404")

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestGet_OtherUsersLinkIsNotFound(t *testing.T) {
	svc := &stubBankService{
		getBankFn: func(string) (*domain.BankAccountLink, error) {
			link := testBankLink()
			link.UserID = "someone_else"
			return link, nil
		},
	}
	h := NewBankHandler(svc)
	c, _ := newTestContext(t, http.MethodGet, "/v1/banks/bank_1", "")
	c.Set("user", testUser())
	c.SetParamNames("id")
	c.SetParamValues("bank_1")

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("ownership must not leak through the 404, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	svc := &stubBankService{
		getBankFn: func(id string) (*domain.BankAccountLink, error) {
			if id != "bank_1" {
				t.Fatalf("unexpected id %q", id)
			}
			return testBankLink(), nil
		},
	}
	h := NewBankHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/v1/banks/bank_1", "")
	c.Set("user", testUser())
	c.SetParamNames("id")
	c.SetParamValues("bank_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"bank_1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
