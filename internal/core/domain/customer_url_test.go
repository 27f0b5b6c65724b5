package domain

import "testing"

func TestExtractCustomerID(t *testing.T) {
	url := "https://api.payments.example.com/customers/0a1b2c3d-4e5f-6789-abcd-ef0123456789"

	id, err := ExtractCustomerID(url)
	if err != nil {
		t.Fatalf("ExtractCustomerID returned error: %v", err)
	}
	if id != "0a1b2c3d-4e5f-6789-abcd-ef0123456789" {
		t.Fatalf("unexpected id: %s", id)
	}
}

func TestExtractCustomerID_Idempotent(t *testing.T) {
	url := "https://api.payments.example.com/customers/cust_42"

	first, err := ExtractCustomerID(url)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ExtractCustomerID(url)
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}
	if first != second {
		t.Fatalf("parse not idempotent: %q vs %q", first, second)
	}
}

func TestExtractCustomerID_TrailingSlash(t *testing.T) {
	id, err := ExtractCustomerID("https://api.payments.example.com/customers/cust_42/")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != "cust_42" {
		t.Fatalf("unexpected id: %s", id)
	}
}

func TestExtractCustomerID_MalformedURL(t *testing.T) {
	cases := []string{
		"",
		"https://api.payments.example.com/funding-sources/fs_1",
		"https://api.payments.example.com/customers/",
		"https://api.payments.example.com/customers/abc/funding-sources?x=1",
	}
	for _, url := range cases {
		if _, err := ExtractCustomerID(url); err == nil {
			t.Fatalf("expected error for %q", url)
		}
	}
}
