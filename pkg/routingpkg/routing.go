// Package routingpkg validates sort codes and account numbers.
package routingpkg

import "github.com/go-playground/validator/v10"

const (
	sortCodeLen      = 6
	accountNumberLen = 8
)

func digits(s string, n int) bool {
	if len(s) != n {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// IsSortCode reports whether s is a six digit sort code.
func IsSortCode(s string) bool {
	return digits(s, sortCodeLen)
}

// IsAccountNumber reports whether s is an eight digit account number.
func IsAccountNumber(s string) bool {
	return digits(s, accountNumberLen)
}

// ValidSortCode validates whether the field holds a sort code.
var ValidSortCode validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsSortCode(s)
	}

	return false
}

// ValidAccountNumber validates whether the field holds an account number.
var ValidAccountNumber validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsAccountNumber(s)
	}

	return false
}
