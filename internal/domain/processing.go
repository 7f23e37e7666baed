package domain

import "time"

// ObligationKind distinguishes recurring obligations.
type ObligationKind string

// Supported obligation kinds.
const (
	ObligationMandate ObligationKind = "mandate"
	ObligationLoan    ObligationKind = "loan"
)

// ItemStatus is the outcome of processing one due obligation.
type ItemStatus string

// Item statuses. A failed item stays due and is retried on the next tick.
const (
	ItemSettled ItemStatus = "settled"
	ItemFailed  ItemStatus = "failed"
)

// ItemResult reports the processing of one due obligation.
type ItemResult struct {
	Kind         ObligationKind `json:"kind"`
	ObligationID int64          `json:"obligation_id"`
	AccountID    int32          `json:"account_id"`
	Status       ItemStatus     `json:"status"`
	Occurrences  int            `json:"occurrences"`
	Closed       bool           `json:"closed,omitempty"`
	Reason       string         `json:"reason,omitempty"`
}

// TickReport summarizes one run of recurring processing.
type TickReport struct {
	AsOf    time.Time    `json:"as_of"`
	Settled []ItemResult `json:"settled"`
	Failed  []ItemResult `json:"failed"`
	// Errors lists the kinds of obligations that could not be fetched.
	Errors []string `json:"errors,omitempty"`
}

// SettleMandateParams is the input data to settle one mandate occurrence.
type SettleMandateParams struct {
	Mandate     Mandate
	RecipientID int32
	Date        time.Time
}

// MandateSettlement is the result of settling one mandate occurrence.
type MandateSettlement struct {
	Mandate  Mandate
	Transfer TransferResult
}

// SettleLoanParams is the input data to settle one loan installment.
type SettleLoanParams struct {
	Loan     Loan
	LenderID int32
	Date     time.Time
}

// LoanSettlement is the result of settling one loan installment.
//
// Closed reports that the final installment was paid and the loan was deleted.
type LoanSettlement struct {
	Loan     Loan
	Transfer TransferResult
	Closed   bool
}
