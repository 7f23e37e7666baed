package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates that the amount is not positive or finer than the minor unit.
	ErrInvalidAmount = errors.New("amount must be positive and in whole pence")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidOwner indicates that the user is unauthorized to transfer money from the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
	// ErrRecipientNotFound indicates that the recipient account cannot be resolved.
	ErrRecipientNotFound = errors.New("recipient account not found")
	// ErrSelfTransfer indicates that the sender and the recipient are the same account.
	ErrSelfTransfer = errors.New("cannot transfer money to the same account")
	// ErrTransferFailed indicates that the transfer was rolled back because of a storage failure.
	ErrTransferFailed = errors.New("transfer failed")
)

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int32
	ToAccountID   int32
	Amount        Money
	Description   string
	Date          time.Time
	SenderType    EntryType
	RecipientType EntryType
}

// RoutingTransferParams is the input data for the transfer to an account addressed by routing.
type RoutingTransferParams struct {
	FromAccountID int32
	To            Routing
	Amount        Money
	Description   string
}

// TransferResult is the result of the transfer transaction.
type TransferResult struct {
	SenderEntry    Entry `json:"sender_entry"`
	RecipientEntry Entry `json:"recipient_entry"`
}
