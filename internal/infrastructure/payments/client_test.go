package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL: srv.URL,
		Key:     "key-1",
		Secret:  "secret-1",
	})
}

func customerInput() ports.CustomerInput {
	return ports.CustomerInput{
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "alice@example.com",
		Type:        "personal",
		Address1:    "1 Main St",
		City:        "Springfield",
		State:       "IL",
		PostalCode:  "62701",
		DateOfBirth: "1990-04-01",
		SSN:         "1234",
	}
}

func TestCreateCustomer_ReturnsLocationHeader(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customers" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key-1" || pass != "secret-1" {
			t.Fatalf("expected basic auth credentials")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["type"] != "personal" || body["dateOfBirth"] != "1990-04-01" {
			t.Fatalf("unexpected request body: %v", body)
		}
		w.Header().Set("Location", "https://api.payments.example.com/customers/cust_1")
		w.WriteHeader(http.StatusCreated)
	})

	url, err := client.CreateCustomer(context.Background(), customerInput())
	if err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}
	if url != "https://api.payments.example.com/customers/cust_1" {
		t.Fatalf("unexpected customer url %q", url)
	}
}

func TestCreateCustomer_MissingLocationHeader(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, err := client.CreateCustomer(context.Background(), customerInput())
	pe, ok := domain.AsPlatformError(err)
	if !ok {
		t.Fatalf("expected platform error for missing Location, got %v", err)
	}
	if pe.Platform != "PAYMENTS" {
		t.Fatalf("unexpected platform: %+v", pe)
	}
}

func TestCreateCustomer_ValidationErrorWithFields(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    "ValidationError",
			"message": "validation error(s) present",
			"_embedded": map[string]any{
				"errors": []map[string]string{
					{"code": "Invalid", "message": "must be a valid date", "path": "/dateOfBirth"},
					{"code": "Required", "message": "postalCode required", "path": "/postalCode"},
				},
			},
		})
	})

	_, err := client.CreateCustomer(context.Background(), customerInput())
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Platform != "PAYMENTS" {
		t.Fatalf("unexpected platform: %+v", ve)
	}
	if len(ve.Fields) != 2 || ve.Fields["/dateOfBirth"] != "must be a valid date" {
		t.Fatalf("unexpected field errors: %v", ve.Fields)
	}
}

func TestCreateCustomer_NonValidationErrorTranslated(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "Forbidden",
			"message": "not authorized to create customers",
		})
	})

	_, err := client.CreateCustomer(context.Background(), customerInput())
	pe, ok := domain.AsPlatformError(err)
	if !ok {
		t.Fatalf("expected platform error, got %v", err)
	}
	if pe.Code != 403 || pe.Message != "not authorized to create customers" {
		t.Fatalf("unexpected translation: %+v", pe)
	}
}

func TestCreateFundingSource_TargetsCustomerPath(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers/cust_1/funding-sources" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["plaidToken"] != "processor-1" || body["name"] != "Checking" {
			t.Fatalf("unexpected request body: %v", body)
		}
		w.Header().Set("Location", "https://api.payments.example.com/funding-sources/fs_1")
		w.WriteHeader(http.StatusCreated)
	})

	url, err := client.CreateFundingSource(context.Background(), "cust_1", "processor-1", "Checking")
	if err != nil {
		t.Fatalf("CreateFundingSource returned error: %v", err)
	}
	if url != "https://api.payments.example.com/funding-sources/fs_1" {
		t.Fatalf("unexpected funding source url %q", url)
	}
}

func TestTranslateError_NonJSONBodyFallsBackToStatusText(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream maintenance"))
	})

	_, err := client.CreateCustomer(context.Background(), customerInput())
	pe, ok := domain.AsPlatformError(err)
	if !ok || pe.Code != 503 {
		t.Fatalf("expected 503 platform error, got %v", err)
	}
	if pe.Message != http.StatusText(http.StatusServiceUnavailable) {
		t.Fatalf("expected status text fallback, got %q", pe.Message)
	}
}
