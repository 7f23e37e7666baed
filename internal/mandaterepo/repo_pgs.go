// Package mandaterepo manages repository layer of standing orders and direct debits.
package mandaterepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates mandate repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns mandate RepoPGS. db may be a transaction.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMandate(s scanner) (domain.Mandate, error) {
	var m domain.Mandate

	err := s.Scan(
		&m.ID,
		&m.AccountID,
		&m.Recipient,
		&m.ReferenceNumber,
		&m.Amount,
		&m.TransactionType,
		&m.Frequency,
		&m.NextPaymentDate,
		&m.CreatedAt,
	)

	return m, err
}

const mandateColumns = `
	id, account_id, recipient, reference_number, amount, transaction_type, frequency,
	next_payment_date, created_at
`

const createQuery = `
INSERT INTO mandates (
	account_id, recipient, reference_number, amount, transaction_type, frequency, next_payment_date
)
VALUES
	($1, $2, $3, $4, $5, $6, $7)
RETURNING` + mandateColumns

// Create adds a mandate which is first due on arg.FirstDueDate.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateMandateParams) (domain.Mandate, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Recipient,
		arg.ReferenceNumber,
		arg.Amount,
		arg.TransactionType,
		arg.Frequency,
		domain.DateOf(arg.FirstDueDate),
	)

	m, err := scanMandate(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "mandates_account_id_fkey":
				return m, domain.ErrAccountNotFound
			case "mandates_amount_check":
				return m, domain.ErrInvalidAmount
			case "mandates_transaction_type_check":
				return m, domain.ErrInvalidTransactionType
			case "mandates_frequency_check":
				return m, domain.ErrInvalidFrequency
			}
		}

		return m, errorspkg.ErrInternal
	}

	return m, nil
}

const getQuery = `SELECT` + mandateColumns + `FROM mandates WHERE id = $1 AND account_id = $2`

// Get returns the mandate of the account.
func (r *RepoPGS) Get(ctx context.Context, id int64, accountID int32) (domain.Mandate, error) {
	l := zerolog.Ctx(ctx)

	m, err := scanMandate(r.db.QueryRowContext(ctx, getQuery, id, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return m, domain.ErrMandateNotFound
		}

		l.Error().Err(err).Int64("mandate_id", id).Send()

		return m, errorspkg.ErrInternal
	}

	return m, nil
}

const listQuery = `SELECT` + mandateColumns + `FROM mandates WHERE account_id = $1 ORDER BY id`

// List returns the mandates of the account.
func (r *RepoPGS) List(ctx context.Context, accountID int32) ([]domain.Mandate, error) {
	return r.query(ctx, listQuery, accountID)
}

const dueQuery = `SELECT` + mandateColumns + `FROM mandates WHERE next_payment_date <= $1 ORDER BY id`

// Due returns the mandates whose next payment date is on or before asOf.
func (r *RepoPGS) Due(ctx context.Context, asOf time.Time) ([]domain.Mandate, error) {
	return r.query(ctx, dueQuery, domain.DateOf(asOf))
}

func (r *RepoPGS) query(ctx context.Context, query string, args ...any) ([]domain.Mandate, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Mandate{}

	for rows.Next() {
		m, err := scanMandate(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `DELETE FROM mandates WHERE id = $1 AND account_id = $2`

// Delete cancels the mandate of the account.
func (r *RepoPGS) Delete(ctx context.Context, id int64, accountID int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id, accountID)
	if err != nil {
		l.Error().Err(err).Int64("mandate_id", id).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrMandateNotFound
	}

	return nil
}

const advanceQuery = `
UPDATE mandates
SET next_payment_date = $3
WHERE id = $1 AND next_payment_date = $2
RETURNING` + mandateColumns

// Advance moves the next payment date of the mandate from one day to another.
//
// It fails with domain.ErrMandateNotDue when the mandate is no longer due on
// from, so an occurrence is never recorded twice.
func (r *RepoPGS) Advance(ctx context.Context, id int64, from, to time.Time) (domain.Mandate, error) {
	l := zerolog.Ctx(ctx)

	m, err := scanMandate(r.db.QueryRowContext(ctx, advanceQuery, id, domain.DateOf(from), domain.DateOf(to)))
	if err != nil {
		if err == sql.ErrNoRows {
			return m, domain.ErrMandateNotDue
		}

		l.Error().Err(err).Int64("mandate_id", id).Send()

		return m, errorspkg.ErrInternal
	}

	return m, nil
}
