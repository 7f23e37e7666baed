// Package loanrepo manages repository layer of loans.
package loanrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/transferrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates loan repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns loan RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns loan RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLoan(s scanner) (domain.Loan, error) {
	var l domain.Loan

	err := s.Scan(
		&l.ID,
		&l.AccountID,
		&l.ProductID,
		&l.Recipient,
		&l.TransactionType,
		&l.NominalAmount,
		&l.Interest,
		&l.InstallmentAmount,
		&l.InstallmentsNumber,
		&l.InstallmentsPaid,
		&l.InstallmentsToBePaid,
		&l.TotalAmountToBeRepaid,
		&l.RemainingAmountToBeRepaid,
		&l.LoanCost,
		&l.InterestType,
		&l.Status,
		&l.FrequencyDays,
		&l.StartDate,
		&l.EndDate,
		&l.NextPaymentDate,
		&l.CurrencyCode,
		&l.Purpose,
		&l.CreatedAt,
	)

	return l, err
}

const loanColumns = `
	id, account_id, product_id, recipient, transaction_type, nominal_amount, interest,
	installment_amount, installments_number, installments_paid, installments_to_be_paid,
	total_amount_to_be_repaid, remaining_amount_to_be_repaid, loan_cost, interest_type,
	loan_status, frequency_days, loan_start_date, loan_end_date, next_payment_date,
	currency_code, loan_purpose, created_at
`

const createQuery = `
INSERT INTO loans (
	account_id, product_id, recipient, transaction_type, nominal_amount, interest,
	installment_amount, installments_number, installments_paid, installments_to_be_paid,
	total_amount_to_be_repaid, remaining_amount_to_be_repaid, loan_cost, interest_type,
	loan_status, frequency_days, loan_start_date, loan_end_date, next_payment_date,
	currency_code, loan_purpose
)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
RETURNING` + loanColumns

// Insert stores the loan without moving any money.
func (r *RepoPGS) Insert(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		loan.AccountID,
		loan.ProductID,
		loan.Recipient,
		loan.TransactionType,
		loan.NominalAmount,
		loan.Interest,
		loan.InstallmentAmount,
		loan.InstallmentsNumber,
		loan.InstallmentsPaid,
		loan.InstallmentsToBePaid,
		loan.TotalAmountToBeRepaid,
		loan.RemainingAmountToBeRepaid,
		loan.LoanCost,
		loan.InterestType,
		loan.Status,
		loan.FrequencyDays,
		domain.DateOf(loan.StartDate),
		domain.DateOf(loan.EndDate),
		domain.DateOf(loan.NextPaymentDate),
		loan.CurrencyCode,
		loan.Purpose,
	)

	created, err := scanLoan(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "loans_account_id_granted_key":
				l.Info().Int32("account_id", loan.AccountID).Msg("loan already in progress")
				return created, domain.ErrLoanInProgress
			case "loans_account_id_fkey":
				return created, domain.ErrAccountNotFound
			}
		}

		l.Error().Err(err).Msgf("Insert(ctx, %+v)", loan)

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

// Create grants the loan and disburses its nominal amount from the lender
// account to the borrower within one db transaction.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateLoanParams) (domain.LoanGrant, error) {
	l := zerolog.Ctx(ctx)

	var grant domain.LoanGrant

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		var err error

		grant.Disbursement, err = transferrepo.NewTxRepoPGS(tx).Execute(ctx, domain.CreateTransferParams{
			FromAccountID: arg.LenderID,
			ToAccountID:   arg.Loan.AccountID,
			Amount:        arg.Loan.NominalAmount,
			Description:   fmt.Sprintf("%s granted", arg.Loan.Purpose),
			Date:          arg.Date,
			SenderType:    domain.EntryTypePaymentOut,
			RecipientType: domain.EntryTypePaymentIn,
		})
		if err != nil {
			return err
		}

		grant.Loan, err = NewTxRepoPGS(tx).Insert(ctx, arg.Loan)

		return err
	})
	if err != nil {
		switch err {
		case domain.ErrLoanInProgress, domain.ErrTransferFailed, errorspkg.ErrInternal:
			return domain.LoanGrant{}, err
		}

		if transferrepo.IsRejection(err) {
			return domain.LoanGrant{}, err
		}

		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		return domain.LoanGrant{}, errorspkg.ErrInternal
	}

	return grant, nil
}

const getInProgressQuery = `SELECT` + loanColumns + `FROM loans WHERE account_id = $1 AND loan_status = 'granted'`

// GetInProgress returns the granted loan of the account.
func (r *RepoPGS) GetInProgress(ctx context.Context, accountID int32) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	loan, err := scanLoan(r.db.QueryRowContext(ctx, getInProgressQuery, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return loan, domain.ErrLoanNotFound
		}

		l.Error().Err(err).Int32("account_id", accountID).Send()

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const listQuery = `SELECT` + loanColumns + `FROM loans WHERE account_id = $1 ORDER BY id`

// List returns the loans of the account.
func (r *RepoPGS) List(ctx context.Context, accountID int32) ([]domain.Loan, error) {
	return r.query(ctx, listQuery, accountID)
}

const dueQuery = `SELECT` + loanColumns + `FROM loans WHERE next_payment_date <= $1 ORDER BY id`

// Due returns the loans whose next installment is due on or before asOf.
func (r *RepoPGS) Due(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	return r.query(ctx, dueQuery, domain.DateOf(asOf))
}

func (r *RepoPGS) query(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Loan{}

	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, loan)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const recordInstallmentQuery = `
UPDATE loans
SET
	installments_paid = installments_paid + 1,
	installments_to_be_paid = installments_to_be_paid - 1,
	remaining_amount_to_be_repaid = GREATEST(remaining_amount_to_be_repaid - installment_amount, 0),
	next_payment_date = next_payment_date + frequency_days
WHERE id = $1 AND next_payment_date = $2 AND installments_to_be_paid > 0
RETURNING` + loanColumns

// RecordInstallment books one paid installment of the loan and moves its next
// payment date by the loan frequency.
//
// It fails with domain.ErrLoanNotDue when the stored next payment date differs
// from loan.NextPaymentDate, so an installment is never recorded twice.
func (r *RepoPGS) RecordInstallment(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	updated, err := scanLoan(r.db.QueryRowContext(ctx, recordInstallmentQuery,
		loan.ID, domain.DateOf(loan.NextPaymentDate)))
	if err != nil {
		if err == sql.ErrNoRows {
			return updated, domain.ErrLoanNotDue
		}

		l.Error().Err(err).Int64("loan_id", loan.ID).Send()

		return updated, errorspkg.ErrInternal
	}

	return updated, nil
}

const deleteQuery = `DELETE FROM loans WHERE id = $1`

// Delete removes the loan.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Int64("loan_id", id).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}
