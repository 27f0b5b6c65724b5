// Package aggregator implements the REST client for the bank-data
// aggregation platform: link tokens, public-token exchange, account metadata,
// and processor tokens. Error responses are translated to
// *domain.PlatformError at this boundary.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/horizonbank/dashboard-api/internal/api/metrics"
	"github.com/horizonbank/dashboard-api/internal/core/domain"
	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

const (
	platformName   = "AGGREGATOR"
	defaultTimeout = 30 * time.Second

	linkTokenPath      = "/link/token/create"
	tokenExchangePath  = "/item/public_token/exchange"
	accountsPath       = "/accounts/get"
	processorTokenPath = "/processor/token/create"
)

// Config carries the connection settings for the aggregation platform.
type Config struct {
	BaseURL  string
	ClientID string
	Secret   string
	Timeout  time.Duration
}

// Client talks to the aggregation platform. Every operation is a POST with
// the client credentials embedded in the body, per the platform convention.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
}

var _ ports.AggregatorClient = (*Client)(nil)

// NewClient creates an aggregation platform client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		clientID:   cfg.ClientID,
		secret:     cfg.Secret,
	}
}

type linkTokenRequest struct {
	ClientID     string        `json:"client_id"`
	Secret       string        `json:"secret"`
	User         linkTokenUser `json:"user"`
	ClientName   string        `json:"client_name"`
	Products     []string      `json:"products"`
	Language     string        `json:"language"`
	CountryCodes []string      `json:"country_codes"`
}

type linkTokenUser struct {
	ClientUserID string `json:"client_user_id"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

type accountsRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []accountPayload `json:"accounts"`
}

type accountPayload struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
	Mask      string `json:"mask"`
}

type processorTokenRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	AccountID   string `json:"account_id"`
	Processor   string `json:"processor"`
}

type processorTokenResponse struct {
	ProcessorToken string `json:"processor_token"`
}

type errorResponse struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// CreateLinkToken mints a temporary link token for the given user scope.
func (c *Client) CreateLinkToken(ctx context.Context, in ports.LinkTokenInput) (string, error) {
	req := linkTokenRequest{
		ClientID:     c.clientID,
		Secret:       c.secret,
		User:         linkTokenUser{ClientUserID: in.ClientUserID},
		ClientName:   in.ClientName,
		Products:     in.Products,
		Language:     in.Language,
		CountryCodes: in.CountryCodes,
	}
	var out linkTokenResponse
	if err := c.post(ctx, "create_link_token", linkTokenPath, req, &out); err != nil {
		return "", err
	}
	return out.LinkToken, nil
}

// ExchangePublicToken swaps a temporary public token for a durable access
// token and its item identifier.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ports.ExchangeResult, error) {
	req := exchangeRequest{ClientID: c.clientID, Secret: c.secret, PublicToken: publicToken}
	var out exchangeResponse
	if err := c.post(ctx, "exchange_public_token", tokenExchangePath, req, &out); err != nil {
		return nil, err
	}
	return &ports.ExchangeResult{AccessToken: out.AccessToken, ItemID: out.ItemID}, nil
}

// GetAccounts lists the accounts reachable through an access token.
func (c *Client) GetAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error) {
	req := accountsRequest{ClientID: c.clientID, Secret: c.secret, AccessToken: accessToken}
	var out accountsResponse
	if err := c.post(ctx, "get_accounts", accountsPath, req, &out); err != nil {
		return nil, err
	}

	accounts := make([]domain.BankAccount, 0, len(out.Accounts))
	for _, a := range out.Accounts {
		accounts = append(accounts, domain.BankAccount{
			AccountID: a.AccountID,
			Name:      a.Name,
			Type:      a.Type,
			Subtype:   a.Subtype,
			Mask:      a.Mask,
		})
	}
	return accounts, nil
}

// CreateProcessorToken mints a processor token for the named processor.
func (c *Client) CreateProcessorToken(ctx context.Context, accessToken, accountID, processor string) (string, error) {
	req := processorTokenRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
		AccountID:   accountID,
		Processor:   processor,
	}
	var out processorTokenResponse
	if err := c.post(ctx, "create_processor_token", processorTokenPath, req, &out); err != nil {
		return "", err
	}
	return out.ProcessorToken, nil
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("aggregator %s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("aggregator %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return fmt.Errorf("aggregator %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(op, "error", start)
		return translateError(resp)
	}
	c.observe(op, "ok", start)

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("aggregator %s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op, status string, start time.Time) {
	metrics.PlatformRequestDuration.
		WithLabelValues("aggregator", op, status).
		Observe(time.Since(start).Seconds())
}

func translateError(resp *http.Response) error {
	var body errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(raw, &body); err == nil && body.ErrorMessage != "" {
		msg = body.ErrorMessage
		if body.ErrorCode != "" {
			msg = body.ErrorCode + ": " + body.ErrorMessage
		}
	}
	return &domain.PlatformError{
		Platform: platformName,
		Code:     resp.StatusCode,
		Message:  msg,
	}
}
