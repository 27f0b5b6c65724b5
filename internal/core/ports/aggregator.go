package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// LinkTokenInput carries the parameters for minting a temporary link token.
type LinkTokenInput struct {
	ClientUserID string
	ClientName   string
	Products     []string
	Language     string
	CountryCodes []string
}

// ExchangeResult is the durable credential pair returned for a public token.
type ExchangeResult struct {
	AccessToken string
	ItemID      string
}

// AggregatorClient is the contract with the bank-data aggregation platform.
type AggregatorClient interface {
	CreateLinkToken(ctx context.Context, in LinkTokenInput) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResult, error)
	GetAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error)

	// CreateProcessorToken mints a processor token for the named payment
	// processor from an access token and one of its account identifiers.
	CreateProcessorToken(ctx context.Context, accessToken, accountID, processor string) (string, error)
}
