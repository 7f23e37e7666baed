package mandatedelivery

import (
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidFrequency validates whether the mandate frequency is supported.
var ValidFrequency validator.Func = func(fl validator.FieldLevel) bool {
	if f, ok := fl.Field().Interface().(string); ok {
		_, err := domain.Frequency(f).Days()
		return err == nil
	}

	return false
}
