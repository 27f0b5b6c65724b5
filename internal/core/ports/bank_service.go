package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// BankService implements institution linking and bank-link queries.
type BankService interface {
	CreateLinkToken(ctx context.Context, user *domain.User) (string, error)

	// ExchangePublicToken runs the full link chain: token exchange, account
	// fetch, processor token, funding source, then persistence. Nothing is
	// persisted unless every step succeeded.
	ExchangePublicToken(ctx context.Context, publicToken string, user *domain.User) (*domain.BankAccountLink, error)

	// GetBanks, GetBank and GetBankByAccountID are best-effort reads:
	// absence on any failure.
	GetBanks(ctx context.Context, userID string) ([]domain.BankAccountLink, error)
	GetBank(ctx context.Context, id string) (*domain.BankAccountLink, error)
	GetBankByAccountID(ctx context.Context, accountID string) (*domain.BankAccountLink, error)
}
