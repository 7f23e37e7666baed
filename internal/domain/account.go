// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameAlreadyExists indicates that the account with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the account with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrRoutingAlreadyExists indicates that the sort code and account number pair is taken.
	ErrRoutingAlreadyExists = errors.New("sort code and account number already in use")
	// ErrWrongPassword indicates the wrong password for the given account.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidOpeningBalance indicates a negative or sub-pence opening balance.
	ErrInvalidOpeningBalance = errors.New("opening balance must be non-negative and in whole pence")
)

// Account roles.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Routing is the sort code and account number pair identifying a payable account.
type Routing struct {
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
}

// Account holds the identity of an account holder.
//
// It has no balance: the balance is always derived from the ledger.
type Account struct {
	ID             int32     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Routing        Routing   `json:"routing"`
	CreatedAt      time.Time `json:"created_at"`
}

// OpenAccountParams is the input data to open an account together with its opening entry.
type OpenAccountParams struct {
	Username       string
	HashedPassword string
	FullName       string
	Email          string
	Role           string
	Routing        Routing
	OpeningBalance Money
	OpeningDate    time.Time
}

// AccountWithBalance is the account with its current derived balance.
type AccountWithBalance struct {
	Account Account `json:"account"`
	Balance Money   `json:"balance"`
}
