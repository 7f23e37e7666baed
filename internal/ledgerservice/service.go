// Package ledgerservice derives balances and statements from the ledger.
package ledgerservice

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Latest(ctx context.Context, accountID int32) (domain.Entry, error)
	List(ctx context.Context, accountID, limit, offset int32) ([]domain.Entry, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo Repo
}

// New returns ledger service struct to manage balance resolution.
func New(lr Repo) *Service {
	return &Service{repo: lr}
}

// Resolve returns the current balance of the account, which is the balance
// recorded by its most recent entry.
func (s *Service) Resolve(ctx context.Context, accountID int32) (domain.Money, error) {
	entry, err := s.repo.Latest(ctx, accountID)
	if err != nil {
		if err == domain.ErrNoLedgerHistory {
			zerolog.Ctx(ctx).Info().Int32("account_id", accountID).Msg("no ledger history")
		}

		return domain.Money{}, err
	}

	return entry.Balance, nil
}

// Statement returns the requested page of the account entries, newest first.
func (s *Service) Statement(ctx context.Context, accountID, pageSize, pageID int32) ([]domain.Entry, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	entries, err := s.repo.List(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
