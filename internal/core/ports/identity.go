package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// IdentityClient is the contract with the identity/session platform. Error
// responses from the platform come back as *domain.PlatformError; transport
// failures are wrapped and passed through unchanged.
type IdentityClient interface {
	// CreateAccount registers a login-capable account and returns it with the
	// platform-assigned identifier.
	CreateAccount(ctx context.Context, email, password, name string) (*domain.Account, error)

	// CreateEmailSession authenticates email+password and returns the session
	// secret the platform issued.
	CreateEmailSession(ctx context.Context, email, password string) (*domain.Session, error)

	// GetAccount resolves the account a session secret belongs to.
	GetAccount(ctx context.Context, sessionSecret string) (*domain.Account, error)

	// DeleteSession invalidates the given session on the platform.
	DeleteSession(ctx context.Context, sessionSecret string) error

	// DeleteAccount removes an account. Used only as a compensating action
	// when a later provisioning step fails.
	DeleteAccount(ctx context.Context, accountID string) error
}
