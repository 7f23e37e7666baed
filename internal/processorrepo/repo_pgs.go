// Package processorrepo settles due recurring obligations, one db transaction per occurrence.
package processorrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/loanrepo"
	"github.com/go-petr/pet-ledger/internal/mandaterepo"
	"github.com/go-petr/pet-ledger/internal/transferrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates processor repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns processor RepoPGS.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{conn: db}
}

// DueMandates returns the mandates due on or before asOf.
func (r *RepoPGS) DueMandates(ctx context.Context, asOf time.Time) ([]domain.Mandate, error) {
	return mandaterepo.NewRepoPGS(r.conn).Due(ctx, asOf)
}

// DueLoans returns the loans with an installment due on or before asOf.
func (r *RepoPGS) DueLoans(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	return loanrepo.NewRepoPGS(r.conn).Due(ctx, asOf)
}

// SettleMandate pays one occurrence of the mandate and advances its next
// payment date by the mandate frequency.
//
// Both happen in one transaction: when either fails nothing is written and
// the mandate stays due.
func (r *RepoPGS) SettleMandate(ctx context.Context, arg domain.SettleMandateParams) (domain.MandateSettlement, error) {
	l := zerolog.Ctx(ctx)

	m := arg.Mandate

	days, err := m.Frequency.Days()
	if err != nil {
		return domain.MandateSettlement{}, err
	}

	var s domain.MandateSettlement

	err = dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		var err error

		s.Transfer, err = transferrepo.NewTxRepoPGS(tx).Execute(ctx, domain.CreateTransferParams{
			FromAccountID: m.AccountID,
			ToAccountID:   arg.RecipientID,
			Amount:        m.Amount,
			Description:   m.ReferenceNumber,
			Date:          arg.Date,
			SenderType:    m.TransactionType,
			RecipientType: domain.EntryTypePaymentIn,
		})
		if err != nil {
			return err
		}

		s.Mandate, err = mandaterepo.NewRepoPGS(tx).Advance(ctx, m.ID, m.NextPaymentDate, domain.AddDays(m.NextPaymentDate, days))

		return err
	})
	if err != nil {
		l.Info().Err(err).Int64("mandate_id", m.ID).Msg("mandate occurrence rolled back")
		return domain.MandateSettlement{}, settleErr(ctx, err)
	}

	return s, nil
}

// SettleLoanInstallment pays one installment of the loan to the lender and
// records it on the loan. The loan is deleted together with its final
// installment.
func (r *RepoPGS) SettleLoanInstallment(ctx context.Context, arg domain.SettleLoanParams) (domain.LoanSettlement, error) {
	l := zerolog.Ctx(ctx)

	loan := arg.Loan

	var s domain.LoanSettlement

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		var err error

		s.Transfer, err = transferrepo.NewTxRepoPGS(tx).Execute(ctx, domain.CreateTransferParams{
			FromAccountID: loan.AccountID,
			ToAccountID:   arg.LenderID,
			Amount:        loan.InstallmentAmount,
			Description:   loan.Purpose,
			Date:          arg.Date,
			SenderType:    loan.TransactionType,
			RecipientType: domain.EntryTypePaymentIn,
		})
		if err != nil {
			return err
		}

		loans := loanrepo.NewTxRepoPGS(tx)

		s.Loan, err = loans.RecordInstallment(ctx, loan)
		if err != nil {
			return err
		}

		if s.Loan.InstallmentsToBePaid > 0 {
			return nil
		}

		s.Closed = true

		return loans.Delete(ctx, loan.ID)
	})
	if err != nil {
		l.Info().Err(err).Int64("loan_id", loan.ID).Msg("loan installment rolled back")
		return domain.LoanSettlement{}, settleErr(ctx, err)
	}

	return s, nil
}

func settleErr(ctx context.Context, err error) error {
	if transferrepo.IsRejection(err) {
		return err
	}

	switch err {
	case domain.ErrTransferFailed,
		domain.ErrMandateNotDue,
		domain.ErrLoanNotDue,
		domain.ErrLoanNotFound,
		errorspkg.ErrInternal:
		return err
	}

	zerolog.Ctx(ctx).Error().Err(err).Send()

	return errorspkg.ErrInternal
}
