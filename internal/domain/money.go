package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

// Money is an amount of money in the account currency.
type Money = decimal.Decimal

// Currency is the currency every ledger amount is held in.
const Currency = currencypkg.GBP

// moneyScale is the number of decimal places the ledger stores.
var moneyScale = func() int32 {
	units, err := currencypkg.MinorUnits(Currency)
	if err != nil {
		panic(err)
	}

	return units
}()

// FitsScale reports whether m is stored by the ledger without rounding.
func FitsScale(m Money) bool {
	return m.Equal(m.Truncate(moneyScale))
}

// ValidAmount reports whether m can be moved between accounts:
// positive and exact to the minor unit.
func ValidAmount(m Money) bool {
	return m.IsPositive() && FitsScale(m)
}

// DateOf truncates t to the calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar day n days after date.
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(0, 0, n)
}
