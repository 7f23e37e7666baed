// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
)

// SeedAccount creates random client account with the given opening balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, openingBalance string) domain.Account {
	t.Helper()

	arg := RandomOpenAccountParams(openingBalance)

	account, err := accountrepo.NewTxRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	SeedEntry(t, db, account, nil, arg.OpeningBalance, arg.OpeningBalance)

	return account
}

// SeedEntry appends an entry crediting amount to the account ledger.
func SeedEntry(t *testing.T, db dbpkg.SQLInterface, account domain.Account, prevID *int64, amount, balance domain.Money) domain.Entry {
	t.Helper()

	typ, description := domain.EntryTypeCash, "Cash deposit"
	if prevID == nil {
		typ, description = domain.EntryTypeOpening, accountrepo.OpeningDescription
	}

	arg := domain.AppendEntryParams{
		AccountID:   account.ID,
		PrevEntryID: prevID,
		Date:        account.CreatedAt,
		Type:        typ,
		Routing:     account.Routing,
		Description: description,
		Credit:      amount,
		Balance:     balance,
	}

	entry, err := ledgerrepo.NewRepoPGS(db).Append(context.Background(), arg)
	if err != nil {
		t.Fatalf("ledgerRepo.Append(context.Background(), %+v) returned error: %v", arg, err)
	}

	return entry
}

// Balance returns the current account balance read from the ledger.
func Balance(t *testing.T, db dbpkg.SQLInterface, accountID int32) domain.Money {
	t.Helper()

	entry, err := ledgerrepo.NewRepoPGS(db).Latest(context.Background(), accountID)
	if err != nil {
		t.Fatalf("ledgerRepo.Latest(context.Background(), %v) returned error: %v", accountID, err)
	}

	return entry.Balance
}
