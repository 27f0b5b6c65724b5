// Package payments implements the REST client for the payment-rails
// platform: customer and funding-source creation. The platform reports
// created resources through the Location header; validation failures carry
// field-level messages and become *domain.ValidationError, everything else a
// *domain.PlatformError.
package payments

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
	platformName   = "PAYMENTS"
	defaultTimeout = 20 * time.Second

	customersPath = "/customers"

	validationErrorCode = "ValidationError"
)

// Config carries the connection settings for the payment-rails platform.
type Config struct {
	BaseURL string
	Key     string
	Secret  string
	Timeout time.Duration
}

// Client talks to the payment-rails platform.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	secret     string
}

var _ ports.PaymentsClient = (*Client)(nil)

// NewClient creates a payment-rails platform client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		key:        cfg.Key,
		secret:     cfg.Secret,
	}
}

type customerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
}

type fundingSourceRequest struct {
	ProcessorToken string `json:"plaidToken"`
	Name           string `json:"name"`
}

type errorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Embedded struct {
		Errors []fieldErrorBody `json:"errors"`
	} `json:"_embedded"`
}

type fieldErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// CreateCustomer creates a customer record and returns its resource URL from
// the Location header.
func (c *Client) CreateCustomer(ctx context.Context, in ports.CustomerInput) (string, error) {
	req := customerRequest{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Type:        in.Type,
		Address1:    in.Address1,
		City:        in.City,
		State:       in.State,
		PostalCode:  in.PostalCode,
		DateOfBirth: in.DateOfBirth,
		SSN:         in.SSN,
	}
	return c.createResource(ctx, "create_customer", customersPath, req)
}

// CreateFundingSource attaches a verified bank account to a customer and
// returns the funding-source URL.
func (c *Client) CreateFundingSource(ctx context.Context, customerID, processorToken, bankName string) (string, error) {
	req := fundingSourceRequest{ProcessorToken: processorToken, Name: bankName}
	path := fmt.Sprintf("%s/%s/funding-sources", customersPath, customerID)
	return c.createResource(ctx, "create_funding_source", path, req)
}

// createResource POSTs the body and returns the Location header of the
// created resource.
func (c *Client) createResource(ctx context.Context, op, path string, body any) (string, error) {
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("payments %s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("payments %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.key, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return "", fmt.Errorf("payments %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(op, "error", start)
		return "", translateError(resp)
	}
	c.observe(op, "ok", start)

	location := resp.Header.Get("Location")
	if location == "" {
		return "", &domain.PlatformError{
			Platform: platformName,
			Code:     resp.StatusCode,
			Message:  fmt.Sprintf("%s: missing Location header on created resource", op),
		}
	}
	return location, nil
}

func (c *Client) observe(op, status string, start time.Time) {
	metrics.PlatformRequestDuration.
		WithLabelValues("payments", op, status).
		Observe(time.Since(start).Seconds())
}

func translateError(resp *http.Response) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return &domain.PlatformError{
			Platform: platformName,
			Code:     resp.StatusCode,
			Message:  http.StatusText(resp.StatusCode),
		}
	}

	if body.Code == validationErrorCode {
		fields := make(map[string]string, len(body.Embedded.Errors))
		for _, fe := range body.Embedded.Errors {
			fields[fe.Path] = fe.Message
		}
		return &domain.ValidationError{
			Platform: platformName,
			Message:  body.Message,
			Fields:   fields,
		}
	}

	return &domain.PlatformError{
		Platform: platformName,
		Code:     resp.StatusCode,
		Message:  body.Message,
	}
}
