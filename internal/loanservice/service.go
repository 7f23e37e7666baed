// Package loanservice manages business logic layer of loans.
package loanservice

import (
	"context"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by loan service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loanservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateLoanParams) (domain.LoanGrant, error)
	GetInProgress(ctx context.Context, accountID int32) (domain.Loan, error)
	List(ctx context.Context, accountID int32) ([]domain.Loan, error)
}

// Catalog provides the loan offers.
type Catalog interface {
	List() []domain.LoanProduct
	Get(id string) (domain.LoanProduct, error)
}

// AccountService resolves the borrower account.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates loan service layer logic.
type Service struct {
	repo     Repo
	catalog  Catalog
	accounts AccountService
	lenderID int32
	now      func() time.Time
}

// New returns loan service struct granting loans from the lender account.
func New(lr Repo, c Catalog, as AccountService, lenderID int32) *Service {
	return &Service{
		repo:     lr,
		catalog:  c,
		accounts: as,
		lenderID: lenderID,
		now:      time.Now,
	}
}

// Products returns the loan offers.
func (s *Service) Products() []domain.LoanProduct {
	return s.catalog.List()
}

// Apply grants the product to the account of username and disburses the
// nominal amount from the lender account.
//
// An account holds at most one granted loan at a time.
func (s *Service) Apply(ctx context.Context, username, productID string) (domain.LoanGrant, error) {
	l := zerolog.Ctx(ctx)

	product, err := s.catalog.Get(productID)
	if err != nil {
		return domain.LoanGrant{}, err
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return domain.LoanGrant{}, err
	}

	_, err = s.repo.GetInProgress(ctx, account.ID)
	switch err {
	case nil:
		return domain.LoanGrant{}, domain.ErrLoanInProgress
	case domain.ErrLoanNotFound:
	default:
		return domain.LoanGrant{}, err
	}

	today := domain.DateOf(s.now())

	grant, err := s.repo.Create(ctx, domain.CreateLoanParams{
		Loan:     domain.NewLoan(account.ID, product, today),
		LenderID: s.lenderID,
		Date:     today,
	})
	if err != nil {
		return domain.LoanGrant{}, err
	}

	l.Info().
		Int64("loan_id", grant.Loan.ID).
		Int32("account_id", account.ID).
		Str("product_id", product.ID).
		Msg("loan granted")

	return grant, nil
}

// List returns the loans of username.
func (s *Service) List(ctx context.Context, username string) ([]domain.Loan, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, account.ID)
}
