package handler

import (
	"time"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

type exchangeRequest struct {
	PublicToken string `json:"public_token" validate:"required"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeResponse struct {
	PublicTokenExchange string `json:"public_token_exchange"`
}

// bankResponse is the transport shape of a bank link. The access token is
// server-side only and never serialized.
type bankResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ItemID           string    `json:"item_id"`
	AccountID        string    `json:"account_id"`
	FundingSourceURL string    `json:"funding_source_url"`
	ShareableID      string    `json:"shareable_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type listBanksResponse struct {
	Data []bankResponse `json:"data"`
}

func toBankResponse(l *domain.BankAccountLink) bankResponse {
	return bankResponse{
		ID:               l.ID,
		UserID:           l.UserID,
		ItemID:           l.ItemID,
		AccountID:        l.AccountID,
		FundingSourceURL: l.FundingSourceURL,
		ShareableID:      l.ShareableID,
		CreatedAt:        l.CreatedAt,
	}
}
