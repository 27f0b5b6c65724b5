package ports

import (
	"context"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
)

// AuthService implements sign-in, session resolution, and logout.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)

	// CurrentUser resolves a session secret to the linked user. Follows the
	// best-effort read policy: absence (nil, nil) on any failure.
	CurrentUser(ctx context.Context, sessionSecret string) (*domain.User, error)

	// Logout invalidates the session on the platform; best-effort.
	Logout(ctx context.Context, sessionSecret string) error
}
