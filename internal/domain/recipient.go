package domain

import (
	"errors"
	"time"
)

// ErrRecipientEntryNotFound indicates that the address book entry is not found.
var ErrRecipientEntryNotFound = errors.New("recipient entry not found")

// Recipient is an address book entry of an account holder.
type Recipient struct {
	ID        int64     `json:"id"`
	AccountID int32     `json:"account_id"`
	Name      string    `json:"name"`
	Routing   Routing   `json:"routing"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRecipientParams is the input data to add an address book entry.
type CreateRecipientParams struct {
	AccountID int32
	Name      string
	Routing   Routing
}
