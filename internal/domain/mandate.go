package domain

import (
	"errors"
	"time"
)

var (
	// ErrMandateNotFound indicates that the mandate is not found.
	ErrMandateNotFound = errors.New("mandate not found")
	// ErrInvalidFrequency indicates unsupported mandate frequency.
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrInvalidTransactionType indicates unsupported mandate transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	// ErrMandateNotDue indicates that the mandate has already been advanced past the expected date.
	ErrMandateNotDue = errors.New("mandate is not due")
)

// Frequency is how often a mandate is paid.
type Frequency string

// Supported frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyMonthly Frequency = "monthly"
)

// Days returns the number of days between two payments.
func (f Frequency) Days() (int, error) {
	switch f {
	case FrequencyDaily:
		return 1, nil
	case FrequencyMonthly:
		return 30, nil
	}

	return 0, ErrInvalidFrequency
}

// Mandate is a standing order or direct debit authorization.
type Mandate struct {
	ID              int64     `json:"id"`
	AccountID       int32     `json:"account_id"`
	Recipient       string    `json:"recipient"`
	ReferenceNumber string    `json:"reference_number"`
	Amount          Money     `json:"amount"`
	TransactionType EntryType `json:"transaction_type"`
	Frequency       Frequency `json:"frequency"`
	NextPaymentDate time.Time `json:"next_payment_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateMandateParams is the input data to create a mandate.
type CreateMandateParams struct {
	AccountID       int32
	Recipient       string
	ReferenceNumber string
	Amount          Money
	TransactionType EntryType
	Frequency       Frequency
	FirstDueDate    time.Time
}
