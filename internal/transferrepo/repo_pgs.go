// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// Transfer moves money between two accounts within its own db transaction.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		var err error
		result, err = NewTxRepoPGS(tx).Execute(ctx, arg)

		return err
	})
	if err != nil {
		if IsRejection(err) {
			return domain.TransferResult{}, err
		}

		l.Error().Err(err).Msgf("Transfer(ctx, %+v)", arg)

		return domain.TransferResult{}, domain.ErrTransferFailed
	}

	return result, nil
}

// Execute appends the debit and credit entries of the transfer using the
// repository db handle, which is expected to be a transaction.
//
// Both account rows are locked in ascending id order, then the latest entries
// are read and the pair is appended on top of them. Nothing is written when
// the transfer is rejected.
func (r *RepoPGS) Execute(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	if !domain.ValidAmount(arg.Amount) {
		return result, domain.ErrInvalidAmount
	}

	accountRepo := accountrepo.NewTxRepoPGS(r.db)
	ledgerRepo := ledgerrepo.NewRepoPGS(r.db)

	sender, recipient, err := lockPair(ctx, accountRepo, arg.FromAccountID, arg.ToAccountID)
	if err != nil {
		return result, err
	}

	if sender.ID == recipient.ID || sender.Routing == recipient.Routing {
		return result, domain.ErrSelfTransfer
	}

	senderLast, err := ledgerRepo.Latest(ctx, sender.ID)
	if err != nil {
		return result, storageErr(err)
	}

	recipientLast, err := ledgerRepo.Latest(ctx, recipient.ID)
	if err != nil {
		return result, storageErr(err)
	}

	if senderLast.Balance.LessThan(arg.Amount) {
		l.Info().
			Int32("account_id", sender.ID).
			Str("balance", senderLast.Balance.String()).
			Str("amount", arg.Amount.String()).
			Msg("insufficient balance")

		return result, domain.ErrInsufficientBalance
	}

	date := domain.DateOf(arg.Date)

	result.SenderEntry, err = ledgerRepo.Append(ctx, domain.AppendEntryParams{
		AccountID:   sender.ID,
		PrevEntryID: &senderLast.ID,
		Date:        date,
		Type:        arg.SenderType,
		Routing:     sender.Routing,
		Description: arg.Description,
		Debit:       arg.Amount,
		Balance:     senderLast.Balance.Sub(arg.Amount),
	})
	if err != nil {
		return domain.TransferResult{}, storageErr(err)
	}

	result.RecipientEntry, err = ledgerRepo.Append(ctx, domain.AppendEntryParams{
		AccountID:   recipient.ID,
		PrevEntryID: &recipientLast.ID,
		Date:        date,
		Type:        arg.RecipientType,
		Routing:     recipient.Routing,
		Description: arg.Description,
		Credit:      arg.Amount,
		Balance:     recipientLast.Balance.Add(arg.Amount),
	})
	if err != nil {
		return domain.TransferResult{}, storageErr(err)
	}

	return result, nil
}

// lockPair locks both account rows in ascending id order to avoid deadlocks.
func lockPair(ctx context.Context, r *accountrepo.RepoPGS, fromID, toID int32) (domain.Account, domain.Account, error) {
	if fromID == toID {
		a, err := r.GetForUpdate(ctx, fromID)
		if err != nil {
			return a, a, storageErr(err)
		}

		return a, a, nil
	}

	firstID, secondID := fromID, toID
	if toID < fromID {
		firstID, secondID = toID, fromID
	}

	first, err := r.GetForUpdate(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, storageErr(err)
	}

	second, err := r.GetForUpdate(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, storageErr(err)
	}

	if firstID == fromID {
		return first, second, nil
	}

	return second, first, nil
}

// IsRejection reports whether err is a business rejection of a transfer as
// opposed to a storage failure.
func IsRejection(err error) bool {
	switch err {
	case domain.ErrInvalidAmount,
		domain.ErrSelfTransfer,
		domain.ErrInsufficientBalance,
		domain.ErrAccountNotFound,
		domain.ErrNoLedgerHistory:
		return true
	}

	return false
}

func storageErr(err error) error {
	if IsRejection(err) {
		return err
	}

	return domain.ErrTransferFailed
}
