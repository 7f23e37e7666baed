// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Open(ctx context.Context, arg domain.OpenAccountParams) (domain.AccountWithBalance, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	GetByRouting(ctx context.Context, routing domain.Routing) (domain.Account, error)
}

// BalanceResolver derives the current balance of an account.
type BalanceResolver interface {
	Resolve(ctx context.Context, accountID int32) (domain.Money, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	balance BalanceResolver
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, br BalanceResolver) *Service {
	return &Service{
		repo:    ar,
		balance: br,
	}
}

// Open opens an account seeded with the given opening balance.
//
// A routing pair is generated when none is given.
func (s *Service) Open(ctx context.Context, password string, arg domain.OpenAccountParams) (domain.AccountWithBalance, error) {
	l := zerolog.Ctx(ctx)

	if arg.OpeningBalance.IsNegative() || !domain.FitsScale(arg.OpeningBalance) {
		return domain.AccountWithBalance{}, domain.ErrInvalidOpeningBalance
	}

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.AccountWithBalance{}, errorspkg.ErrInternal
	}

	arg.HashedPassword = hashedPassword

	if arg.Role == "" {
		arg.Role = domain.RoleClient
	}

	if arg.Routing == (domain.Routing{}) {
		arg.Routing = domain.Routing{
			SortCode:      randompkg.SortCode(),
			AccountNumber: randompkg.AccountNumber(),
		}
	}

	if arg.OpeningDate.IsZero() {
		arg.OpeningDate = time.Now()
	}

	arg.OpeningDate = domain.DateOf(arg.OpeningDate)

	account, err := s.repo.Open(ctx, arg)
	if err != nil {
		return domain.AccountWithBalance{}, err
	}

	return account, nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}

	if err := passpkg.Check(password, account.HashedPassword); err != nil {
		l.Warn().Err(err).Str("username", username).Send()
		return domain.Account{}, domain.ErrWrongPassword
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByUsername returns the account of the given account holder.
func (s *Service) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return s.repo.GetByUsername(ctx, username)
}

// GetByRouting returns the account addressed by the given routing pair.
func (s *Service) GetByRouting(ctx context.Context, routing domain.Routing) (domain.Account, error) {
	return s.repo.GetByRouting(ctx, routing)
}

// Me returns the account of the given account holder with its derived balance.
func (s *Service) Me(ctx context.Context, username string) (domain.AccountWithBalance, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.AccountWithBalance{}, err
	}

	balance, err := s.balance.Resolve(ctx, account.ID)
	if err != nil {
		return domain.AccountWithBalance{}, err
	}

	return domain.AccountWithBalance{Account: account, Balance: balance}, nil
}
