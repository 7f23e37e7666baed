// Package mandateservice manages business logic layer of standing orders and direct debits.
package mandateservice

import (
	"context"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by mandate service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package mandateservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateMandateParams) (domain.Mandate, error)
	List(ctx context.Context, accountID int32) ([]domain.Mandate, error)
	Delete(ctx context.Context, id int64, accountID int32) error
}

// AccountService resolves the payer and the payee of a mandate.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates mandate service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService
	now      func() time.Time
}

// New returns mandate service struct to manage mandates.
func New(mr Repo, as AccountService) *Service {
	return &Service{
		repo:     mr,
		accounts: as,
		now:      time.Now,
	}
}

func validMandate(arg domain.CreateMandateParams) error {
	if !domain.ValidAmount(arg.Amount) {
		return domain.ErrInvalidAmount
	}

	if _, err := arg.Frequency.Days(); err != nil {
		return err
	}

	switch arg.TransactionType {
	case domain.EntryTypeStandingOrder, domain.EntryTypeDirectDebit:
	default:
		return domain.ErrInvalidTransactionType
	}

	return nil
}

// Create registers a mandate paying arg.Recipient from the account of username.
//
// The recipient is the username of the payee account. The mandate is first due
// on arg.FirstDueDate, or today when it is zero.
func (s *Service) Create(ctx context.Context, username string, arg domain.CreateMandateParams) (domain.Mandate, error) {
	l := zerolog.Ctx(ctx)

	if err := validMandate(arg); err != nil {
		return domain.Mandate{}, err
	}

	payer, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return domain.Mandate{}, err
	}

	payee, err := s.accounts.GetByUsername(ctx, arg.Recipient)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			l.Info().Str("recipient", arg.Recipient).Msg("mandate recipient not found")
			return domain.Mandate{}, domain.ErrRecipientNotFound
		}

		return domain.Mandate{}, err
	}

	if payer.ID == payee.ID {
		return domain.Mandate{}, domain.ErrSelfTransfer
	}

	arg.AccountID = payer.ID

	if arg.FirstDueDate.IsZero() {
		arg.FirstDueDate = s.now()
	}

	arg.FirstDueDate = domain.DateOf(arg.FirstDueDate)

	m, err := s.repo.Create(ctx, arg)
	if err != nil {
		return domain.Mandate{}, err
	}

	l.Info().Int64("mandate_id", m.ID).Int32("account_id", m.AccountID).Msg("mandate created")

	return m, nil
}

// List returns the mandates of username.
func (s *Service) List(ctx context.Context, username string) ([]domain.Mandate, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, account.ID)
}

// Delete cancels the mandate of username.
func (s *Service) Delete(ctx context.Context, username string, id int64) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, account.ID)
}
