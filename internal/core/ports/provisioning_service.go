package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// SignUpInput is the personal profile collected by the sign-up form.
type SignUpInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Address     string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
}

// ProvisioningService runs the account-provisioning sequence (payment
// customer, identity account, user document, session) or guarantees that no
// orphaned identity account or user document remains.
type ProvisioningService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, *domain.Session, error)
}
