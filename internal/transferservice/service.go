// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
}

// AccountService resolves accounts taking part in a transfer.
type AccountService interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	GetByRouting(ctx context.Context, routing domain.Routing) (domain.Account, error)
}

// BalanceResolver derives the current balance of an account.
type BalanceResolver interface {
	Resolve(ctx context.Context, accountID int32) (domain.Money, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService
	balance  BalanceResolver
	now      func() time.Time
}

// New return transfer service struct to manage transfer bussines logic.
func New(tr Repo, as AccountService, br BalanceResolver) *Service {
	return &Service{
		repo:     tr,
		accounts: as,
		balance:  br,
		now:      time.Now,
	}
}

func (s *Service) validRequest(ctx context.Context, fromUsername string, from, to domain.Account, arg domain.CreateTransferParams) error {
	l := zerolog.Ctx(ctx)

	if from.Username != fromUsername {
		l.Warn().Int32("account_id", from.ID).Str("username", fromUsername).Msg("invalid owner")
		return domain.ErrInvalidOwner
	}

	if from.ID == to.ID || from.Routing == to.Routing {
		return domain.ErrSelfTransfer
	}

	balance, err := s.balance.Resolve(ctx, from.ID)
	if err != nil {
		return err
	}

	if balance.LessThan(arg.Amount) {
		return domain.ErrInsufficientBalance
	}

	return nil
}

// Transfer checks if transfer request is valid and then executes transfer.
//
// The balance is checked again under the account locks by the repository.
func (s *Service) Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	if !domain.ValidAmount(arg.Amount) {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	from, err := s.accounts.Get(ctx, arg.FromAccountID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	to, err := s.accounts.Get(ctx, arg.ToAccountID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return domain.TransferResult{}, domain.ErrRecipientNotFound
		}

		return domain.TransferResult{}, err
	}

	return s.execute(ctx, fromUsername, from, to, arg)
}

// TransferToRouting transfers money from the caller account to the account
// addressed by the given sort code and account number.
func (s *Service) TransferToRouting(ctx context.Context, fromUsername string, arg domain.RoutingTransferParams) (domain.TransferResult, error) {
	if !domain.ValidAmount(arg.Amount) {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	var (
		from domain.Account
		err  error
	)

	if arg.FromAccountID == 0 {
		from, err = s.accounts.GetByUsername(ctx, fromUsername)
	} else {
		from, err = s.accounts.Get(ctx, arg.FromAccountID)
	}

	if err != nil {
		return domain.TransferResult{}, err
	}

	to, err := s.accounts.GetByRouting(ctx, arg.To)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return domain.TransferResult{}, domain.ErrRecipientNotFound
		}

		return domain.TransferResult{}, err
	}

	return s.execute(ctx, fromUsername, from, to, domain.CreateTransferParams{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        arg.Amount,
		Description:   arg.Description,
	})
}

func (s *Service) execute(ctx context.Context, fromUsername string, from, to domain.Account, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	if err := s.validRequest(ctx, fromUsername, from, to, arg); err != nil {
		return domain.TransferResult{}, err
	}

	if arg.SenderType == "" {
		arg.SenderType = domain.EntryTypePaymentOut
	}

	if arg.RecipientType == "" {
		arg.RecipientType = domain.EntryTypePaymentIn
	}

	if arg.Date.IsZero() {
		arg.Date = s.now()
	}

	arg.Date = domain.DateOf(arg.Date)

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		return domain.TransferResult{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int32("from_account_id", arg.FromAccountID).
		Int32("to_account_id", arg.ToAccountID).
		Str("amount", arg.Amount.String()).
		Msg("transfer executed")

	return result, nil
}
