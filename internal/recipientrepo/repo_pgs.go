// Package recipientrepo manages repository layer of the address book.
package recipientrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates recipient repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns recipient RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipient(s scanner) (domain.Recipient, error) {
	var r domain.Recipient

	err := s.Scan(
		&r.ID,
		&r.AccountID,
		&r.Name,
		&r.Routing.SortCode,
		&r.Routing.AccountNumber,
		&r.CreatedAt,
	)

	return r, err
}

const createQuery = `
INSERT INTO recipients (account_id, name, sort_code, account_number)
VALUES ($1, $2, $3, $4)
RETURNING id, account_id, name, sort_code, account_number, created_at
`

// Create adds an address book entry to the account.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateRecipientParams) (domain.Recipient, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Name,
		arg.Routing.SortCode,
		arg.Routing.AccountNumber,
	)

	rec, err := scanRecipient(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "recipients_account_id_fkey" {
			return rec, domain.ErrAccountNotFound
		}

		return rec, errorspkg.ErrInternal
	}

	return rec, nil
}

const getQuery = `
SELECT id, account_id, name, sort_code, account_number, created_at
FROM recipients
WHERE id = $1 AND account_id = $2
`

// Get returns the address book entry of the account.
func (r *RepoPGS) Get(ctx context.Context, id int64, accountID int32) (domain.Recipient, error) {
	l := zerolog.Ctx(ctx)

	rec, err := scanRecipient(r.db.QueryRowContext(ctx, getQuery, id, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return rec, domain.ErrRecipientEntryNotFound
		}

		l.Error().Err(err).Int64("id", id).Send()

		return rec, errorspkg.ErrInternal
	}

	return rec, nil
}

const listQuery = `
SELECT id, account_id, name, sort_code, account_number, created_at
FROM recipients
WHERE account_id = $1
ORDER BY name, id
`

// List returns the address book of the account ordered by name.
func (r *RepoPGS) List(ctx context.Context, accountID int32) ([]domain.Recipient, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Recipient{}

	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, rec)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM recipients
WHERE id = $1 AND account_id = $2
`

// Delete removes the address book entry of the account.
func (r *RepoPGS) Delete(ctx context.Context, id int64, accountID int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id, accountID)
	if err != nil {
		l.Error().Err(err).Int64("id", id).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrRecipientEntryNotFound
	}

	return nil
}
