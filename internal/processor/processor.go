// Package processor runs the recurring payment tick over due mandates and loans.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultMaxCatchUp bounds the occurrences settled for one item within a tick.
const DefaultMaxCatchUp = 31

var (
	// ErrFetchDue indicates that due obligations of some kind could not be fetched.
	ErrFetchDue = errors.New("fetch due obligations")
	// ErrCatchUpLimit indicates that an item is still due after the catch-up limit.
	ErrCatchUpLimit = errors.New("catch-up limit reached")
)

// Repo provides data access layer interface needed by the processor.
//
//go:generate mockgen -source processor.go -destination processor_mock.go -package processor
type Repo interface {
	DueMandates(ctx context.Context, asOf time.Time) ([]domain.Mandate, error)
	DueLoans(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
	SettleMandate(ctx context.Context, arg domain.SettleMandateParams) (domain.MandateSettlement, error)
	SettleLoanInstallment(ctx context.Context, arg domain.SettleLoanParams) (domain.LoanSettlement, error)
}

// AccountFinder resolves mandate payees by username.
type AccountFinder interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Processor settles due recurring obligations.
type Processor struct {
	repo       Repo
	accounts   AccountFinder
	lenderID   int32
	maxCatchUp int
}

// New returns Processor paying loan installments to the lender account.
func New(r Repo, af AccountFinder, lenderID int32, maxCatchUp int) *Processor {
	if maxCatchUp < 1 {
		maxCatchUp = DefaultMaxCatchUp
	}

	return &Processor{
		repo:       r,
		accounts:   af,
		lenderID:   lenderID,
		maxCatchUp: maxCatchUp,
	}
}

// RunTick settles every mandate and loan due on or before the day of asOf.
//
// Each occurrence is settled in its own transaction. An item overdue by
// several periods is settled once per missed period. A failed item is left
// due and reported, and processing continues with the next item, so running
// the tick again for the same day only retries what failed.
func (p *Processor) RunTick(ctx context.Context, asOf time.Time) (domain.TickReport, error) {
	l := zerolog.Ctx(ctx)

	asOf = domain.DateOf(asOf)

	report := domain.TickReport{
		AsOf:    asOf,
		Settled: []domain.ItemResult{},
		Failed:  []domain.ItemResult{},
	}

	var errs []error

	mandates, err := p.repo.DueMandates(ctx, asOf)
	if err != nil {
		l.Warn().Err(err).Str("kind", string(domain.ObligationMandate)).Msg("due fetch failed")
		errs = append(errs, fmt.Errorf("%w: %s: %v", ErrFetchDue, domain.ObligationMandate, err))
		report.Errors = append(report.Errors, string(domain.ObligationMandate))
	}

	for _, m := range mandates {
		p.record(ctx, &report, p.processMandate(ctx, m, asOf))
	}

	loans, err := p.repo.DueLoans(ctx, asOf)
	if err != nil {
		l.Warn().Err(err).Str("kind", string(domain.ObligationLoan)).Msg("due fetch failed")
		errs = append(errs, fmt.Errorf("%w: %s: %v", ErrFetchDue, domain.ObligationLoan, err))
		report.Errors = append(report.Errors, string(domain.ObligationLoan))
	}

	for _, loan := range loans {
		p.record(ctx, &report, p.processLoan(ctx, loan, asOf))
	}

	l.Info().
		Time("as_of", asOf).
		Int("settled", len(report.Settled)).
		Int("failed", len(report.Failed)).
		Msg("tick finished")

	return report, errors.Join(errs...)
}

func (p *Processor) record(ctx context.Context, report *domain.TickReport, res domain.ItemResult) {
	if res.Status == domain.ItemSettled {
		report.Settled = append(report.Settled, res)
		return
	}

	zerolog.Ctx(ctx).Warn().
		Str("kind", string(res.Kind)).
		Int64("obligation_id", res.ObligationID).
		Int32("account_id", res.AccountID).
		Int("occurrences", res.Occurrences).
		Str("reason", res.Reason).
		Msg("obligation not settled")

	report.Failed = append(report.Failed, res)
}

func failed(res domain.ItemResult, err error) domain.ItemResult {
	res.Status = domain.ItemFailed
	res.Reason = err.Error()

	return res
}

func (p *Processor) processMandate(ctx context.Context, m domain.Mandate, asOf time.Time) domain.ItemResult {
	res := domain.ItemResult{
		Kind:         domain.ObligationMandate,
		ObligationID: m.ID,
		AccountID:    m.AccountID,
	}

	recipient, err := p.accounts.GetByUsername(ctx, m.Recipient)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			err = domain.ErrRecipientNotFound
		}

		return failed(res, err)
	}

	for !m.NextPaymentDate.After(asOf) {
		if res.Occurrences == p.maxCatchUp {
			return failed(res, ErrCatchUpLimit)
		}

		s, err := p.repo.SettleMandate(ctx, domain.SettleMandateParams{
			Mandate:     m,
			RecipientID: recipient.ID,
			Date:        asOf,
		})
		if err != nil {
			return failed(res, err)
		}

		m = s.Mandate
		res.Occurrences++
	}

	res.Status = domain.ItemSettled

	return res
}

func (p *Processor) processLoan(ctx context.Context, loan domain.Loan, asOf time.Time) domain.ItemResult {
	res := domain.ItemResult{
		Kind:         domain.ObligationLoan,
		ObligationID: loan.ID,
		AccountID:    loan.AccountID,
	}

	for !loan.NextPaymentDate.After(asOf) {
		if res.Occurrences == p.maxCatchUp {
			return failed(res, ErrCatchUpLimit)
		}

		s, err := p.repo.SettleLoanInstallment(ctx, domain.SettleLoanParams{
			Loan:     loan,
			LenderID: p.lenderID,
			Date:     asOf,
		})
		if err != nil {
			return failed(res, err)
		}

		loan = s.Loan
		res.Occurrences++

		if s.Closed {
			res.Closed = true
			break
		}
	}

	res.Status = domain.ItemSettled

	return res
}
