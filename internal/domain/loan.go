package domain

import (
	"errors"
	"time"
)

var (
	// ErrLoanInProgress indicates that the account already has a granted loan.
	ErrLoanInProgress = errors.New("loan already in progress")
	// ErrLoanNotFound indicates that the loan is not found.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanProductNotFound indicates unknown loan product.
	ErrLoanProductNotFound = errors.New("loan product not found")
	// ErrLoanNotDue indicates that the installment has already been recorded.
	ErrLoanNotDue = errors.New("loan installment is not due")
)

// LoanStatusGranted is the status of a loan being repaid.
const LoanStatusGranted = "granted"

// LoanProduct holds the fixed parameters of a loan offer.
type LoanProduct struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Recipient             string    `json:"recipient"`
	TransactionType       EntryType `json:"transaction_type"`
	NominalAmount         Money     `json:"nominal_amount"`
	Interest              string    `json:"interest"`
	InstallmentAmount     Money     `json:"installment_amount"`
	InstallmentsNumber    int32     `json:"installments_number"`
	TotalAmountToBeRepaid Money     `json:"total_amount_to_be_repaid"`
	LoanCost              Money     `json:"loan_cost"`
	InterestType          string    `json:"interest_type"`
	FrequencyDays         int32     `json:"frequency_days"`
	CurrencyCode          string    `json:"currency_code"`
	Purpose               string    `json:"purpose"`
}

// Loan is an amortizing schedule of fixed installment transfers.
type Loan struct {
	ID                        int64     `json:"id"`
	AccountID                 int32     `json:"account_id"`
	ProductID                 string    `json:"product_id"`
	Recipient                 string    `json:"recipient"`
	TransactionType           EntryType `json:"transaction_type"`
	NominalAmount             Money     `json:"nominal_amount"`
	Interest                  string    `json:"interest"`
	InstallmentAmount         Money     `json:"installment_amount"`
	InstallmentsNumber        int32     `json:"installments_number"`
	InstallmentsPaid          int32     `json:"installments_paid"`
	InstallmentsToBePaid      int32     `json:"installments_to_be_paid"`
	TotalAmountToBeRepaid     Money     `json:"total_amount_to_be_repaid"`
	RemainingAmountToBeRepaid Money     `json:"remaining_amount_to_be_repaid"`
	LoanCost                  Money     `json:"loan_cost"`
	InterestType              string    `json:"interest_type"`
	Status                    string    `json:"status"`
	FrequencyDays             int32     `json:"frequency_days"`
	StartDate                 time.Time `json:"start_date"`
	EndDate                   time.Time `json:"end_date"`
	NextPaymentDate           time.Time `json:"next_payment_date"`
	CurrencyCode              string    `json:"currency_code"`
	Purpose                   string    `json:"purpose"`
	CreatedAt                 time.Time `json:"created_at"`
}

// NewLoan builds a granted loan for the account from the product starting at the given day.
func NewLoan(accountID int32, p LoanProduct, start time.Time) Loan {
	start = DateOf(start)

	return Loan{
		AccountID:                 accountID,
		ProductID:                 p.ID,
		Recipient:                 p.Recipient,
		TransactionType:           p.TransactionType,
		NominalAmount:             p.NominalAmount,
		Interest:                  p.Interest,
		InstallmentAmount:         p.InstallmentAmount,
		InstallmentsNumber:        p.InstallmentsNumber,
		InstallmentsPaid:          0,
		InstallmentsToBePaid:      p.InstallmentsNumber,
		TotalAmountToBeRepaid:     p.TotalAmountToBeRepaid,
		RemainingAmountToBeRepaid: p.TotalAmountToBeRepaid,
		LoanCost:                  p.LoanCost,
		InterestType:              p.InterestType,
		Status:                    LoanStatusGranted,
		FrequencyDays:             p.FrequencyDays,
		StartDate:                 start,
		EndDate:                   AddDays(start, int(p.InstallmentsNumber*p.FrequencyDays)),
		NextPaymentDate:           AddDays(start, int(p.FrequencyDays)),
		CurrencyCode:              p.CurrencyCode,
		Purpose:                   p.Purpose,
	}
}

// CreateLoanParams is the input data to grant a loan and disburse its principal.
type CreateLoanParams struct {
	Loan     Loan
	LenderID int32
	Date     time.Time
}

// LoanGrant is the result of granting a loan.
type LoanGrant struct {
	Loan         Loan           `json:"loan"`
	Disbursement TransferResult `json:"disbursement"`
}
