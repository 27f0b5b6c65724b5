package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/horizonbank/dashboard-api/internal/core/domain"
	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

type authService struct {
	identity ports.IdentityClient
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(identity ports.IdentityClient, users ports.UserRepository, log zerolog.Logger) ports.AuthService {
	return &authService{identity: identity, users: users, log: log}
}

// SignIn authenticates against the identity platform and returns the linked
// user together with the platform session. Platform failures are mapped to
// the closed taxonomy here, once; non-platform errors pass through unchanged.
func (s *authService) SignIn(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	session, err := s.identity.CreateEmailSession(ctx, email, password)
	if err != nil {
		if pe, ok := domain.AsPlatformError(err); ok {
			switch pe.Code {
			case 401:
				return nil, nil, domain.ErrInvalidCredentials
			case 404:
				return nil, nil, domain.ErrUserNotFound
			default:
				return nil, nil, domain.ErrUnexpected
			}
		}
		return nil, nil, err
	}

	user := s.lookupUser(ctx, session.AccountID)
	s.log.Info().Str("account_id", session.AccountID).Msg("user signed in")
	return user, session, nil
}

// CurrentUser resolves the session to its account, then to the user document.
func (s *authService) CurrentUser(ctx context.Context, sessionSecret string) (*domain.User, error) {
	account, err := s.identity.GetAccount(ctx, sessionSecret)
	if err != nil {
		s.log.Warn().Err(err).Msg("session resolution failed, treating as absent")
		return nil, nil
	}
	return s.lookupUser(ctx, account.ID), nil
}

// Logout invalidates the session on the platform. Best-effort: an already
// dead session is as logged-out as it gets.
func (s *authService) Logout(ctx context.Context, sessionSecret string) error {
	if err := s.identity.DeleteSession(ctx, sessionSecret); err != nil {
		s.log.Warn().Err(err).Msg("session deletion failed")
	}
	return nil
}

// lookupUser applies the best-effort read policy: absence on any failure.
// A storage outage here must not turn a valid session into an error.
func (s *authService) lookupUser(ctx context.Context, accountID string) *domain.User {
	user, err := s.users.FindByAccountID(ctx, accountID)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", accountID).Msg("user lookup failed, returning absence")
		return nil
	}
	return user
}
