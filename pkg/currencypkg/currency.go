// Package currencypkg validates the ISO 4217 currencies the ledger can hold.
package currencypkg

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCurrency indicates a currency code the ledger does not handle.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Supported currency codes.
const (
	GBP = "GBP"
	EUR = "EUR"
	USD = "USD"
)

var minorUnits = map[string]int32{
	GBP: 2,
	EUR: 2,
	USD: 2,
}

// Validate returns ErrUnsupportedCurrency unless code is a supported currency.
func Validate(code string) error {
	if _, ok := minorUnits[code]; !ok {
		return fmt.Errorf("%w %q", ErrUnsupportedCurrency, code)
	}

	return nil
}

// MinorUnits returns the number of decimal places amounts in code are kept to.
func MinorUnits(code string) (int32, error) {
	if err := Validate(code); err != nil {
		return 0, err
	}

	return minorUnits[code], nil
}
