package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/horizonbank/dashboard-api/internal/api/metrics"
	"github.com/horizonbank/dashboard-api/internal/core/domain"
	"github.com/horizonbank/dashboard-api/internal/core/ports"
)

const (
	processorName = "dwolla"

	linkProductAuth = "auth"
	linkLanguage    = "en"
	linkCountryUS   = "US"
)

// LinkGuard abstracts the double-link idempotency store (Redis).
type LinkGuard interface {
	IsLinked(ctx context.Context, userID, accountID string) (bool, error)
	Mark(ctx context.Context, userID, accountID string) error
}

// IDEncrypter derives the shareable identifier from a raw aggregator account
// identifier.
type IDEncrypter interface {
	EncryptID(id string) (string, error)
}

type bankService struct {
	aggregator ports.AggregatorClient
	payments   ports.PaymentsClient
	banks      ports.BankRepository
	guard      LinkGuard
	encrypter  IDEncrypter
	log        zerolog.Logger
}

// NewBankService returns a BankService implementation.
func NewBankService(
	aggregator ports.AggregatorClient,
	payments ports.PaymentsClient,
	banks ports.BankRepository,
	guard LinkGuard,
	encrypter IDEncrypter,
	log zerolog.Logger,
) ports.BankService {
	return &bankService{
		aggregator: aggregator,
		payments:   payments,
		banks:      banks,
		guard:      guard,
		encrypter:  encrypter,
		log:        log,
	}
}

// CreateLinkToken mints a temporary link token scoped to the given user.
// Mutation policy: fails loud.
func (s *bankService) CreateLinkToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.aggregator.CreateLinkToken(ctx, ports.LinkTokenInput{
		ClientUserID: user.ID,
		ClientName:   user.FullName(),
		Products:     []string{linkProductAuth},
		Language:     linkLanguage,
		CountryCodes: []string{linkCountryUS},
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("link token creation failed")
		return "", err
	}
	return token, nil
}

// ExchangePublicToken turns a temporary public token into a persisted bank
// link. Failure at the funding-source step is fatal for the whole operation
// and nothing is persisted; the earlier token exchange is not compensated
// (the platform offers no revoke used here).
func (s *bankService) ExchangePublicToken(ctx context.Context, publicToken string, user *domain.User) (*domain.BankAccountLink, error) {
	exchange, err := s.aggregator.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, s.linkFail(user.ID, "token exchange", err)
	}

	accounts, err := s.aggregator.GetAccounts(ctx, exchange.AccessToken)
	if err != nil {
		return nil, s.linkFail(user.ID, "accounts fetch", err)
	}
	if len(accounts) == 0 {
		return nil, s.linkFail(user.ID, "accounts fetch", &domain.PlatformError{
			Platform: "AGGREGATOR",
			Code:     422,
			Message:  "no accounts returned for access token",
		})
	}
	account := accounts[0]

	if dup := s.alreadyLinked(ctx, user.ID, account.AccountID); dup {
		metrics.BankLinksTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrBankAlreadyLinked
	}

	processorToken, err := s.aggregator.CreateProcessorToken(ctx, exchange.AccessToken, account.AccountID, processorName)
	if err != nil {
		return nil, s.linkFail(user.ID, "processor token", err)
	}

	fundingSourceURL, err := s.payments.CreateFundingSource(ctx, user.PaymentCustomerID, processorToken, account.Name)
	if err != nil {
		return nil, s.linkFail(user.ID, "funding source", err)
	}

	shareableID, err := s.encrypter.EncryptID(account.AccountID)
	if err != nil {
		return nil, s.linkFail(user.ID, "shareable id", fmt.Errorf("encrypt account id: %w", err))
	}

	link, err := s.banks.Create(ctx, &domain.BankAccountLink{
		UserID:           user.ID,
		ItemID:           exchange.ItemID,
		AccountID:        account.AccountID,
		AccessToken:      exchange.AccessToken,
		FundingSourceURL: fundingSourceURL,
		ShareableID:      shareableID,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		return nil, s.linkFail(user.ID, "persist", err)
	}

	if err := s.guard.Mark(ctx, user.ID, account.AccountID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to set link guard key")
	}

	metrics.BankLinksTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("user_id", user.ID).
		Str("item_id", exchange.ItemID).
		Msg("bank account linked")

	return link, nil
}

// alreadyLinked consults the guard first, then the durable store. Guard
// errors are non-fatal: the repository lookup is the authority.
func (s *bankService) alreadyLinked(ctx context.Context, userID, accountID string) bool {
	linked, err := s.guard.IsLinked(ctx, userID, accountID)
	if err != nil {
		s.log.Warn().Err(err).Msg("link guard check failed, falling back to store")
	} else if linked {
		return true
	}

	existing, err := s.banks.FindByExternalAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, domain.ErrBankNotFound) {
		s.log.Warn().Err(err).Msg("duplicate link lookup failed")
		return false
	}
	return existing != nil && existing.UserID == userID
}

func (s *bankService) linkFail(userID, stage string, err error) error {
	metrics.BankLinksTotal.WithLabelValues("failure").Inc()
	s.log.Error().Err(err).Str("user_id", userID).Str("stage", stage).Msg("bank link failed")
	return err
}

// GetBanks lists the user's bank links. Best-effort read: absence on failure.
func (s *bankService) GetBanks(ctx context.Context, userID string) ([]domain.BankAccountLink, error) {
	links, err := s.banks.ListByUser(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("bank list failed, returning absence")
		return nil, nil
	}
	return links, nil
}

// GetBank fetches one link by document ID. Best-effort read.
func (s *bankService) GetBank(ctx context.Context, id string) (*domain.BankAccountLink, error) {
	link, err := s.banks.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("bank_id", id).Msg("bank lookup failed, returning absence")
		return nil, nil
	}
	return link, nil
}

// GetBankByAccountID resolves an aggregator account identifier to its link.
// Absence unless exactly one document matches.
func (s *bankService) GetBankByAccountID(ctx context.Context, accountID string) (*domain.BankAccountLink, error) {
	link, err := s.banks.FindByExternalAccountID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrBankNotFound) {
			s.log.Warn().Err(err).Msg("bank lookup by account failed, returning absence")
		}
		return nil, nil
	}
	return link, nil
}
