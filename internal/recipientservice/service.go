// Package recipientservice manages business logic layer of the address book.
package recipientservice

import (
	"context"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/routingpkg"
)

// ErrInvalidRouting indicates malformed sort code or account number.
var ErrInvalidRouting = errors.New("invalid sort code or account number")

// Repo provides data access layer interface needed by recipient service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package recipientservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateRecipientParams) (domain.Recipient, error)
	List(ctx context.Context, accountID int32) ([]domain.Recipient, error)
	Delete(ctx context.Context, id int64, accountID int32) error
}

// AccountService resolves the account of the caller.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates recipient service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService
}

// New returns recipient service struct to manage the address book.
func New(rr Repo, as AccountService) *Service {
	return &Service{
		repo:     rr,
		accounts: as,
	}
}

// Create adds a payee to the address book of the user.
func (s *Service) Create(ctx context.Context, username, name string, routing domain.Routing) (domain.Recipient, error) {
	if !routingpkg.IsSortCode(routing.SortCode) || !routingpkg.IsAccountNumber(routing.AccountNumber) {
		return domain.Recipient{}, ErrInvalidRouting
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return domain.Recipient{}, err
	}

	return s.repo.Create(ctx, domain.CreateRecipientParams{
		AccountID: account.ID,
		Name:      name,
		Routing:   routing,
	})
}

// List returns the address book of the user.
func (s *Service) List(ctx context.Context, username string) ([]domain.Recipient, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, account.ID)
}

// Delete removes the payee from the address book of the user.
func (s *Service) Delete(ctx context.Context, username string, id int64) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, account.ID)
}
