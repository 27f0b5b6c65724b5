package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// UserRepository persists the user profile documents.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByAccountID(ctx context.Context, accountID string) (*domain.User, error)

	// Delete removes a user document by its document ID. Only exercised as a
	// compensating action during sign-up unwinding.
	Delete(ctx context.Context, id string) error
}
