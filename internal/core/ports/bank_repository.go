package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// BankRepository persists bank-account-link documents.
type BankRepository interface {
	Create(ctx context.Context, link *domain.BankAccountLink) (*domain.BankAccountLink, error)
	ListByUser(ctx context.Context, userID string) ([]domain.BankAccountLink, error)
	FindByID(ctx context.Context, id string) (*domain.BankAccountLink, error)

	// FindByExternalAccountID returns the link owning the given aggregator
	// account identifier, or ErrBankNotFound unless exactly one matches.
	FindByExternalAccountID(ctx context.Context, accountID string) (*domain.BankAccountLink, error)
}
