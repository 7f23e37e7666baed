package test

import (
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// RandomRouting returns a random sort code and account number pair.
func RandomRouting() domain.Routing {
	return domain.Routing{
		SortCode:      randompkg.SortCode(),
		AccountNumber: randompkg.AccountNumber(),
	}
}

// RandomAccount returns random client account.
func RandomAccount() domain.Account {
	username := randompkg.Owner()

	return domain.Account{
		ID:        randompkg.IntBetween(1, 100),
		Username:  username,
		FullName:  randompkg.String(10),
		Email:     randompkg.Email(),
		Role:      domain.RoleClient,
		Routing:   RandomRouting(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomOpenAccountParams returns random client account data with the given opening balance.
func RandomOpenAccountParams(openingBalance string) domain.OpenAccountParams {
	return domain.OpenAccountParams{
		Username:       randompkg.Owner(),
		HashedPassword: randompkg.String(32),
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Role:           domain.RoleClient,
		Routing:        RandomRouting(),
		OpeningBalance: decimal.RequireFromString(openingBalance),
		OpeningDate:    domain.DateOf(time.Now()),
	}
}
