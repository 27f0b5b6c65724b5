// Package identity implements the REST client for the identity/session
// platform. It is the single translation boundary for that platform: every
// non-2xx response becomes a *domain.PlatformError carrying the platform's
// status code and message.
package identity

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
	platformName   = "IDENTITY"
	defaultTimeout = 15 * time.Second

	headerProject = "X-Identity-Project"
	headerKey     = "X-Identity-Key"
	headerSession = "X-Identity-Session"
)

// Config carries the connection settings for the identity platform.
type Config struct {
	BaseURL   string
	ProjectID string
	APIKey    string
	Timeout   time.Duration
}

// Client talks to the identity platform's REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	projectID  string
	apiKey     string
}

var _ ports.IdentityClient = (*Client)(nil)

// NewClient creates an identity platform client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		projectID:  cfg.ProjectID,
		apiKey:     cfg.APIKey,
	}
}

type accountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	Secret    string `json:"secret"`
	AccountID string `json:"account_id"`
}

type platformErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CreateAccount registers a new login-capable account using the admin key.
func (c *Client) CreateAccount(ctx context.Context, email, password, name string) (*domain.Account, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}
	var out accountResponse
	if err := c.do(ctx, "create_account", http.MethodPost, "/v1/accounts", c.adminHeaders(), body, &out); err != nil {
		return nil, err
	}
	return &domain.Account{ID: out.ID, Email: out.Email, Name: out.Name}, nil
}

// CreateEmailSession authenticates the credentials and returns the session
// the platform issued.
func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var out sessionResponse
	if err := c.do(ctx, "create_session", http.MethodPost, "/v1/sessions/email", c.adminHeaders(), body, &out); err != nil {
		return nil, err
	}
	return &domain.Session{Secret: out.Secret, AccountID: out.AccountID}, nil
}

// GetAccount resolves the account bound to a session secret.
func (c *Client) GetAccount(ctx context.Context, sessionSecret string) (*domain.Account, error) {
	var out accountResponse
	if err := c.do(ctx, "get_account", http.MethodGet, "/v1/account", c.sessionHeaders(sessionSecret), nil, &out); err != nil {
		return nil, err
	}
	return &domain.Account{ID: out.ID, Email: out.Email, Name: out.Name}, nil
}

// DeleteSession invalidates the current session.
func (c *Client) DeleteSession(ctx context.Context, sessionSecret string) error {
	return c.do(ctx, "delete_session", http.MethodDelete, "/v1/account/sessions/current", c.sessionHeaders(sessionSecret), nil, nil)
}

// DeleteAccount removes an account by ID using the admin key.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	return c.do(ctx, "delete_account", http.MethodDelete, "/v1/accounts/"+accountID, c.adminHeaders(), nil, nil)
}

func (c *Client) adminHeaders() map[string]string {
	return map[string]string{
		headerProject: c.projectID,
		headerKey:     c.apiKey,
	}
}

func (c *Client) sessionHeaders(secret string) map[string]string {
	return map[string]string{
		headerProject: c.projectID,
		headerSession: secret,
	}
}

// do executes one platform request, decoding the response into out when the
// call succeeds and translating error responses into *domain.PlatformError.
// Transport failures are wrapped and passed through untranslated: they are
// not platform errors.
func (c *Client) do(ctx context.Context, op, method, path string, headers map[string]string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity %s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("identity %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return fmt.Errorf("identity %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(op, "error", start)
		return translateError(resp)
	}
	c.observe(op, "ok", start)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity %s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op, status string, start time.Time) {
	metrics.PlatformRequestDuration.
		WithLabelValues("identity", op, status).
		Observe(time.Since(start).Seconds())
}

func translateError(resp *http.Response) error {
	var body platformErrorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}
	return &domain.PlatformError{
		Platform: platformName,
		Code:     resp.StatusCode,
		Message:  body.Message,
	}
}
