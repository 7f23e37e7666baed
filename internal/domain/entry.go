package domain

import (
	"errors"
	"time"
)

var (
	// ErrNoLedgerHistory indicates that the account has never received a ledger entry.
	ErrNoLedgerHistory = errors.New("account has no ledger history")
	// ErrConcurrentUpdate indicates that another entry was appended for the account meanwhile.
	ErrConcurrentUpdate = errors.New("concurrent ledger update")
)

// EntryType tags the origin of a ledger entry.
type EntryType string

// Supported entry types.
const (
	EntryTypeOpening       EntryType = "OPN"
	EntryTypePaymentOut    EntryType = "FPO"
	EntryTypePaymentIn     EntryType = "FPI"
	EntryTypeStandingOrder EntryType = "SO"
	EntryTypeDirectDebit   EntryType = "DD"
	EntryTypeDebitCard     EntryType = "DEB"
	EntryTypeCash          EntryType = "CSH"
	EntryTypeSalary        EntryType = "SAL"
	EntryTypeMortgage      EntryType = "MTG"
)

// Entry is an immutable record of a single balance change of an account.
//
// Balance holds the account balance after the entry is applied.
type Entry struct {
	ID          int64     `json:"id"`
	AccountID   int32     `json:"account_id"`
	PrevEntryID *int64    `json:"prev_entry_id,omitempty"`
	Date        time.Time `json:"date"`
	Type        EntryType `json:"type"`
	Routing     Routing   `json:"routing"`
	Description string    `json:"description"`
	Debit       Money     `json:"debit"`
	Credit      Money     `json:"credit"`
	Balance     Money     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// AppendEntryParams is the input data to append an entry to the ledger.
type AppendEntryParams struct {
	AccountID   int32
	PrevEntryID *int64
	Date        time.Time
	Type        EntryType
	Routing     Routing
	Description string
	Debit       Money
	Credit      Money
	Balance     Money
}
