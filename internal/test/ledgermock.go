package test

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-petr/pet-ledger/internal/domain"
)

// Query patterns issued by a transfer.
const (
	LockPattern   = `FROM accounts WHERE id = \$1 FOR UPDATE`
	LatestPattern = `FROM entries WHERE account_id = \$1 ORDER BY id DESC LIMIT 1`
	AppendPattern = `INSERT INTO entries`
)

var (
	// AccountColumns are the columns of an accounts row.
	AccountColumns = []string{
		"id", "username", "hashed_password", "full_name", "email", "role",
		"sort_code", "account_number", "created_at",
	}
	// EntryColumns are the columns of an entries row.
	EntryColumns = []string{
		"id", "account_id", "prev_entry_id", "entry_date", "entry_type", "sort_code",
		"account_number", "description", "debit_amount", "credit_amount", "balance", "created_at",
	}
)

// LedgerAccount is an account together with the tip of its ledger as seen by sqlmock.
type LedgerAccount struct {
	ID       int32
	Username string
	Routing  domain.Routing
	LastID   int64
	Balance  string
}

// ExpectLock expects the account row to be locked.
func ExpectLock(mock sqlmock.Sqlmock, a LedgerAccount) {
	mock.ExpectQuery(LockPattern).WithArgs(a.ID).WillReturnRows(
		sqlmock.NewRows(AccountColumns).AddRow(
			a.ID, a.Username, "hash", a.Username, a.Username+"@example.com", domain.RoleClient,
			a.Routing.SortCode, a.Routing.AccountNumber, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		))
}

// ExpectLatest expects the latest entry of the account to be read.
func ExpectLatest(mock sqlmock.Sqlmock, a LedgerAccount, date time.Time) {
	mock.ExpectQuery(LatestPattern).WithArgs(a.ID).WillReturnRows(
		sqlmock.NewRows(EntryColumns).AddRow(
			a.LastID, a.ID, nil, date, string(domain.EntryTypeOpening), a.Routing.SortCode, a.Routing.AccountNumber,
			"Opening balance", "0.00", a.Balance, a.Balance, date,
		))
}

// ExpectAppend expects an entry on top of the latest entry of the account and returns it with id.
func ExpectAppend(
	mock sqlmock.Sqlmock,
	a LedgerAccount,
	id int64,
	date time.Time,
	typ domain.EntryType,
	description, debit, credit, balance string,
) {
	mock.ExpectQuery(AppendPattern).
		WithArgs(a.ID, a.LastID, domain.DateOf(date), string(typ), a.Routing.SortCode, a.Routing.AccountNumber,
			description, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(EntryColumns).AddRow(
			id, a.ID, a.LastID, domain.DateOf(date), string(typ), a.Routing.SortCode, a.Routing.AccountNumber,
			description, debit, credit, balance, date,
		))
}
