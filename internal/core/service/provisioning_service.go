package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/horizonbank/dashboard-api/internal/api/metrics"
	"github.com/horizonbank/dashboard-api/internal/core/domain"
	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

const customerTypePersonal = "personal"

type provisioningService struct {
	payments ports.PaymentsClient
	identity ports.IdentityClient
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewProvisioningService returns a ProvisioningService implementation.
func NewProvisioningService(
	payments ports.PaymentsClient,
	identity ports.IdentityClient,
	users ports.UserRepository,
	log zerolog.Logger,
) ports.ProvisioningService {
	return &provisioningService{
		payments: payments,
		identity: identity,
		users:    users,
		log:      log,
	}
}

// SignUp runs the provisioning sequence. Steps are strictly sequential; each
// consumes the previous step's output. Every locally-owned resource pushes an
// undo onto the compensation stack, so any later failure unwinds to a clean
// state with no orphaned identity account or user document. The payment
// customer is never compensated because the platform has no delete operation.
func (s *provisioningService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, *domain.Session, error) {
	comp := newCompensator(s.log)

	// 1. Payment customer. Nothing to compensate on failure: it is the first
	// resource and the operation fails whole.
	customerURL, err := s.payments.CreateCustomer(ctx, ports.CustomerInput{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Type:        customerTypePersonal,
		Address1:    in.Address,
		City:        in.City,
		State:       in.State,
		PostalCode:  in.PostalCode,
		DateOfBirth: in.DateOfBirth,
		SSN:         in.SSN,
	})
	if err != nil {
		return nil, nil, s.fail("payment_customer", err)
	}

	// 2. Identity account.
	account, err := s.identity.CreateAccount(ctx, in.Email, in.Password, in.FirstName+" "+in.LastName)
	if err != nil {
		return nil, nil, s.fail("identity_account", mapIdentityConflict(err))
	}
	if account == nil || account.ID == "" {
		return nil, nil, s.fail("identity_account", domain.ErrAccountCreation)
	}
	accountID := account.ID
	comp.push("identity_account", func(ctx context.Context) error {
		return s.identity.DeleteAccount(ctx, accountID)
	})

	// 3. Pure parse of the customer URL.
	customerID, err := domain.ExtractCustomerID(customerURL)
	if err != nil {
		comp.unwind(ctx)
		return nil, nil, s.fail("customer_url", err)
	}

	// 4. User document linking account and customer.
	user, err := s.users.Create(ctx, &domain.User{
		AccountID:          accountID,
		Email:              in.Email,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Address:            in.Address,
		City:               in.City,
		State:              in.State,
		PostalCode:         in.PostalCode,
		DateOfBirth:        in.DateOfBirth,
		SSN:                in.SSN,
		PaymentCustomerID:  customerID,
		PaymentCustomerURL: customerURL,
		CreatedAt:          time.Now().UTC(),
	})
	if err != nil {
		comp.unwind(ctx)
		return nil, nil, s.fail("user_document", mapIdentityConflict(err))
	}
	userID := user.ID
	comp.push("user_document", func(ctx context.Context) error {
		return s.users.Delete(ctx, userID)
	})

	// 5. Session. A failure here also unwinds: a sign-up either yields
	// user + customer + session or leaves nothing behind.
	session, err := s.identity.CreateEmailSession(ctx, in.Email, in.Password)
	if err != nil {
		comp.unwind(ctx)
		return nil, nil, s.fail("session", err)
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("account_id", accountID).
		Str("customer_id", customerID).
		Msg("user provisioned")

	return user, session, nil
}

func (s *provisioningService) fail(step string, err error) error {
	metrics.SignupsTotal.WithLabelValues("failure").Inc()
	metrics.SignupFailuresTotal.WithLabelValues(step).Inc()
	s.log.Error().Err(err).Str("step", step).Msg("sign-up failed")
	return err
}

// mapIdentityConflict maps an identity-platform conflict (409 equivalent) to
// ErrEmailExists. Every other error passes through unchanged, so the caller
// observes either a taxonomy kind or a classified platform error, never a
// bare transport failure.
func mapIdentityConflict(err error) error {
	if pe, ok := domain.AsPlatformError(err); ok && pe.Code == 409 {
		return domain.ErrEmailExists
	}
	return err
}
