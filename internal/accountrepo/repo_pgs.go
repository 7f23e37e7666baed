// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// OpeningDescription is the description of the first entry of every account.
const OpeningDescription = "Opening balance"

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns account RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns account RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const accountColumns = `
	id, username, hashed_password, full_name, email, role, sort_code, account_number, created_at
`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.HashedPassword,
		&a.FullName,
		&a.Email,
		&a.Role,
		&a.Routing.SortCode,
		&a.Routing.AccountNumber,
		&a.CreatedAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
	accounts (username, hashed_password, full_name, email, role, sort_code, account_number)
VALUES
	($1, $2, $3, $4, $5, $6, $7)
RETURNING` + accountColumns

// Create inserts the account row without any ledger entry.
func (r *RepoPGS) Create(ctx context.Context, arg domain.OpenAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Username,
		arg.HashedPassword,
		arg.FullName,
		arg.Email,
		arg.Role,
		arg.Routing.SortCode,
		arg.Routing.AccountNumber,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Str("username", arg.Username).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_username_key":
				return a, domain.ErrUsernameAlreadyExists
			case "accounts_email_key":
				return a, domain.ErrEmailAlreadyExists
			case "accounts_sort_code_account_number_key":
				return a, domain.ErrRoutingAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

// Open creates the account together with its opening entry within a single db transaction.
func (r *RepoPGS) Open(ctx context.Context, arg domain.OpenAccountParams) (domain.AccountWithBalance, error) {
	var result domain.AccountWithBalance

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		account, err := NewTxRepoPGS(tx).Create(ctx, arg)
		if err != nil {
			return err
		}

		opening, err := ledgerrepo.NewRepoPGS(tx).Append(ctx, domain.AppendEntryParams{
			AccountID:   account.ID,
			Date:        arg.OpeningDate,
			Type:        domain.EntryTypeOpening,
			Routing:     account.Routing,
			Description: OpeningDescription,
			Debit:       domain.Money{},
			Credit:      arg.OpeningBalance,
			Balance:     arg.OpeningBalance,
		})
		if err != nil {
			return err
		}

		result = domain.AccountWithBalance{Account: account, Balance: opening.Balance}

		return nil
	})
	if err != nil {
		if err == domain.ErrUsernameAlreadyExists ||
			err == domain.ErrEmailAlreadyExists ||
			err == domain.ErrRoutingAlreadyExists {
			return domain.AccountWithBalance{}, err
		}

		zerolog.Ctx(ctx).Error().Err(err).Str("username", arg.Username).Msg("open account")

		return domain.AccountWithBalance{}, errorspkg.ErrInternal
	}

	return result, nil
}

const getQuery = `
SELECT` + accountColumns + `FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = `
SELECT` + accountColumns + `FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row
// until the end of the surrounding transaction.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int32) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

const getByUsernameQuery = `
SELECT` + accountColumns + `FROM accounts
WHERE username = $1
`

// GetByUsername returns the account with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.get(ctx, getByUsernameQuery, username)
}

const getByRoutingQuery = `
SELECT` + accountColumns + `FROM accounts
WHERE sort_code = $1 AND account_number = $2
`

// GetByRouting returns the account addressed by the given sort code and account number.
func (r *RepoPGS) GetByRouting(ctx context.Context, routing domain.Routing) (domain.Account, error) {
	return r.get(ctx, getByRoutingQuery, routing.SortCode, routing.AccountNumber)
}

func (r *RepoPGS) get(ctx context.Context, query string, args ...any) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
