package handler

import (
	"time"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type signUpRequest struct {
	Email       string `json:"email"         validate:"required,email"`
	Password    string `json:"password"      validate:"required,min=8"`
	FirstName   string `json:"first_name"    validate:"required"`
	LastName    string `json:"last_name"     validate:"required"`
	Address     string `json:"address"       validate:"required"`
	City        string `json:"city"          validate:"required"`
	State       string `json:"state"         validate:"required,len=2"`
	PostalCode  string `json:"postal_code"   validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	SSN         string `json:"ssn"           validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

// userResponse is the transport shape of a user. Intentionally separate from
// the domain type so the JSON contract is not coupled to internal changes;
// national identifier and customer URL never leave the server.
type userResponse struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"account_id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	PostalCode        string    `json:"postal_code"`
	DateOfBirth       string    `json:"date_of_birth"`
	PaymentCustomerID string    `json:"payment_customer_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:                u.ID,
		AccountID:         u.AccountID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Address:           u.Address,
		City:              u.City,
		State:             u.State,
		PostalCode:        u.PostalCode,
		DateOfBirth:       u.DateOfBirth,
		PaymentCustomerID: u.PaymentCustomerID,
		CreatedAt:         u.CreatedAt,
	}
}

type authResponse struct {
	User *userResponse `json:"user"`
}
