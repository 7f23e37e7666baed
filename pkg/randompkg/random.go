// Package randompkg generates random test fixtures: names, emails and routing numbers.
package randompkg

import (
	"crypto/rand"
	"math/big"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

// Intn returns a uniform random integer in [0, n).
func Intn(n int) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return v.Int64()
}

// IntBetween returns a random integer in [min, max].
func IntBetween(min, max int) int32 {
	return int32(min) + int32(Intn(max-min+1))
}

func pick(n int, from string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = from[Intn(len(from))]
	}

	return string(b)
}

// String returns n random lowercase letters.
func String(n int) string {
	return pick(n, letters)
}

// Digits returns n random decimal digits.
func Digits(n int) string {
	return pick(n, digits)
}

// Owner returns a random username.
func Owner() string {
	return String(6)
}

// Email returns a random email address.
func Email() string {
	return String(10) + "@email.com"
}

// SortCode returns a random six digit sort code.
func SortCode() string {
	return Digits(6)
}

// AccountNumber returns a random eight digit account number.
func AccountNumber() string {
	return Digits(8)
}
