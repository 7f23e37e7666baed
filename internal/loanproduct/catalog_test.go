package loanproduct

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	products := c.List()
	require.Len(t, products, 4)

	wantIDs := []string{"consumer", "car", "home-renovation", "test"}
	for i, p := range products {
		require.Equal(t, wantIDs[i], p.ID)
		require.Equal(t, "Imperial Bank", p.Recipient)
		require.Equal(t, domain.EntryTypeStandingOrder, p.TransactionType)
		require.Equal(t, "GBP", p.CurrencyCode)
	}

	consumer, err := c.Get("consumer")
	require.NoError(t, err)
	require.True(t, consumer.NominalAmount.Equal(decimal.NewFromInt(5000)))
	require.True(t, consumer.InstallmentAmount.Equal(decimal.RequireFromString("237.50")))
	require.Equal(t, int32(24), consumer.InstallmentsNumber)
	require.True(t, consumer.TotalAmountToBeRepaid.Equal(decimal.NewFromInt(5700)))
	require.Equal(t, int32(30), consumer.FrequencyDays)

	testLoan, err := c.Get("test")
	require.NoError(t, err)
	require.Equal(t, int32(1), testLoan.FrequencyDays)
	require.True(t, testLoan.InstallmentAmount.Mul(decimal.NewFromInt(int64(testLoan.InstallmentsNumber))).
		Equal(testLoan.TotalAmountToBeRepaid))
}

func TestGetUnknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Get("mortgage")
	require.Equal(t, domain.ErrLoanProductNotFound, err)
}

func TestParseInvalid(t *testing.T) {
	testCases := map[string]string{
		"BadYAML": "products: [",
		"UnsupportedCurrency": `
products:
  - id: x
    transaction_type: SO
    nominal_amount: "1"
    installment_amount: "1"
    installments_number: 1
    total_amount_to_be_repaid: "1"
    loan_cost: "0"
    frequency_days: 1
    currency_code: JPY
`,
		"TooManyDecimals": `
products:
  - id: x
    transaction_type: SO
    nominal_amount: "1"
    installment_amount: "0.333"
    installments_number: 3
    total_amount_to_be_repaid: "1"
    loan_cost: "0"
    frequency_days: 1
    currency_code: GBP
`,
		"BadAmount": `
products:
  - id: x
    transaction_type: SO
    nominal_amount: "lots"
    installment_amount: "1"
    installments_number: 1
    total_amount_to_be_repaid: "1"
    loan_cost: "0"
    frequency_days: 1
    currency_code: GBP
`,
		"DuplicateID": `
products:
  - id: x
    transaction_type: SO
    nominal_amount: "1"
    installment_amount: "1"
    installments_number: 1
    total_amount_to_be_repaid: "1"
    loan_cost: "0"
    frequency_days: 1
    currency_code: GBP
  - id: x
    transaction_type: DD
    nominal_amount: "1"
    installment_amount: "1"
    installments_number: 1
    total_amount_to_be_repaid: "1"
    loan_cost: "0"
    frequency_days: 1
    currency_code: GBP
`,
	}

	for name, doc := range testCases {
		doc := doc

		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Len(t, c.List(), 4)

	path := filepath.Join(t.TempDir(), "products.yaml")
	doc := `
products:
  - id: micro
    name: Micro loan
    recipient: Imperial Bank
    transaction_type: DD
    nominal_amount: "200"
    interest: 5%
    installment_amount: "105"
    installments_number: 2
    total_amount_to_be_repaid: "210"
    loan_cost: "10"
    interest_type: fixed
    frequency_days: 7
    currency_code: EUR
    purpose: Micro loan
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err = Load(path)
	require.NoError(t, err)

	p, err := c.Get("micro")
	require.NoError(t, err)
	require.Equal(t, domain.EntryTypeDirectDebit, p.TransactionType)
	require.Equal(t, int32(7), p.FrequencyDays)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
