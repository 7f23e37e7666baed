// Package ledgerrepo manages repository layer of ledger entries.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns ledger RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (domain.Entry, error) {
	var e domain.Entry

	err := s.Scan(
		&e.ID,
		&e.AccountID,
		&e.PrevEntryID,
		&e.Date,
		&e.Type,
		&e.Routing.SortCode,
		&e.Routing.AccountNumber,
		&e.Description,
		&e.Debit,
		&e.Credit,
		&e.Balance,
		&e.CreatedAt,
	)

	return e, err
}

const latestQuery = `
SELECT
	id, account_id, prev_entry_id, entry_date, entry_type, sort_code, account_number,
	description, debit_amount, credit_amount, balance, created_at
FROM entries
WHERE account_id = $1
ORDER BY id DESC
LIMIT 1
`

// Latest returns the most recent entry of the account.
func (r *RepoPGS) Latest(ctx context.Context, accountID int32) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	e, err := scanEntry(r.db.QueryRowContext(ctx, latestQuery, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return e, domain.ErrNoLedgerHistory
		}

		l.Error().Err(err).Int32("account_id", accountID).Send()

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const appendQuery = `
INSERT INTO entries (
	account_id, prev_entry_id, entry_date, entry_type, sort_code, account_number,
	description, debit_amount, credit_amount, balance
)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING
	id, account_id, prev_entry_id, entry_date, entry_type, sort_code, account_number,
	description, debit_amount, credit_amount, balance, created_at
`

// Append adds an entry on top of arg.PrevEntryID.
//
// It fails with domain.ErrConcurrentUpdate when another entry was already
// appended on top of the same previous entry.
func (r *RepoPGS) Append(ctx context.Context, arg domain.AppendEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, appendQuery,
		arg.AccountID,
		arg.PrevEntryID,
		domain.DateOf(arg.Date),
		arg.Type,
		arg.Routing.SortCode,
		arg.Routing.AccountNumber,
		arg.Description,
		arg.Debit,
		arg.Credit,
		arg.Balance,
	)

	e, err := scanEntry(row)
	if err != nil {
		l.Error().Err(err).Msgf("Append(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_account_id_prev_entry_id_key", "entries_account_id_opening_idx":
				return e, domain.ErrConcurrentUpdate
			case "entries_account_id_fkey":
				return e, domain.ErrAccountNotFound
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT
	id, account_id, prev_entry_id, entry_date, entry_type, sort_code, account_number,
	description, debit_amount, credit_amount, balance, created_at
FROM entries
WHERE account_id = $1
ORDER BY id DESC
LIMIT $2 OFFSET $3
`

// List returns the specified page of the account entries, newest first.
func (r *RepoPGS) List(ctx context.Context, accountID, limit, offset int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
