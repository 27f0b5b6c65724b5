package ports

import "context"

// CustomerInput is the personal profile required to create a payment-rails
// customer.
type CustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	Type        string
	Address1    string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
}

// PaymentsClient is the contract with the payment-rails platform. Created
// resources are referenced by URL, mirroring the platform's Location-header
// convention. The platform exposes no customer delete operation, so no
// compensating method exists here.
type PaymentsClient interface {
	// CreateCustomer creates a customer record and returns its resource URL.
	CreateCustomer(ctx context.Context, in CustomerInput) (string, error)

	// CreateFundingSource attaches a bank account to a customer via a
	// processor token and returns the funding-source URL.
	CreateFundingSource(ctx context.Context, customerID, processorToken, bankName string) (string, error)
}
