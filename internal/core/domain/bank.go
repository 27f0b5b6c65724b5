package domain

import "time"

// BankAccountLink ties a User to one account at an external financial
// institution. It is created only after the full token-exchange chain
// succeeded, funding source included. One user may own many links; links are
// never cascaded when a user is removed.
type BankAccountLink struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ItemID           string    `json:"item_id"`
	AccountID        string    `json:"account_id"`
	AccessToken      string    `json:"-"`
	FundingSourceURL string    `json:"funding_source_url"`
	ShareableID      string    `json:"shareable_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// BankAccount is account metadata reported by the aggregation platform for an
// access token. Only the fields the link flow consumes are modelled.
type BankAccount struct {
	AccountID string
	Name      string
	Type      string
	Subtype   string
	Mask      string
}
