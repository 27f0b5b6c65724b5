package domain

import "time"

// User is the locally persisted profile document. It links an identity
// platform account to a payment-rails customer: every persisted User must
// reference a customer that was successfully created, never the reverse.
type User struct {
	ID                 string    `json:"id"`
	AccountID          string    `json:"account_id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	PostalCode         string    `json:"postal_code"`
	DateOfBirth        string    `json:"date_of_birth"`
	SSN                string    `json:"-"`
	PaymentCustomerID  string    `json:"payment_customer_id"`
	PaymentCustomerURL string    `json:"payment_customer_url"`
	CreatedAt          time.Time `json:"created_at"`
}

// FullName is the display name registered with the identity platform.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Account is an identity-platform login account. The platform assigns the ID;
// nothing else about the account is tracked locally.
type Account struct {
	ID    string
	Email string
	Name  string
}

// Session is a platform-issued credential. Secret is the opaque value carried
// in the session cookie; expiry is whatever the platform assigned and is not
// tracked independently.
type Session struct {
	Secret    string
	AccountID string
}
