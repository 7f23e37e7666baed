package mandaterepo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	columns = []string{
		"id", "account_id", "recipient", "reference_number", "amount", "transaction_type", "frequency",
		"next_payment_date", "created_at",
	}
	decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
)

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewRepoPGS(db), mock
}

func TestCreate(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	createdAt := due.Add(9 * time.Hour)

	arg := domain.CreateMandateParams{
		AccountID:       7,
		Recipient:       "bob",
		ReferenceNumber: "GYM-1",
		Amount:          decimal.RequireFromString("50"),
		TransactionType: domain.EntryTypeStandingOrder,
		Frequency:       domain.FrequencyDaily,
		FirstDueDate:    due.Add(15 * time.Hour),
	}

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      domain.Mandate
		wantErr   error
	}{
		{
			name: "OK",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).AddRow(1, 7, "bob", "GYM-1", "50.00", "SO", "daily", due, createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WithArgs(7, "bob", "GYM-1", sqlmock.AnyArg(), "SO", "daily", due).
					WillReturnRows(rows)
			},
			want: domain.Mandate{
				ID:              1,
				AccountID:       7,
				Recipient:       "bob",
				ReferenceNumber: "GYM-1",
				Amount:          decimal.RequireFromString("50"),
				TransactionType: domain.EntryTypeStandingOrder,
				Frequency:       domain.FrequencyDaily,
				NextPaymentDate: due,
				CreatedAt:       createdAt,
			},
		},
		{
			name: "AccountNotFound",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WillReturnError(&pq.Error{Code: "23503", Constraint: "mandates_account_id_fkey"})
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "InvalidFrequency",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WillReturnError(&pq.Error{Code: "23514", Constraint: "mandates_frequency_check"})
			},
			wantErr: domain.ErrInvalidFrequency,
		},
		{
			name: "InternalError",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).WillReturnError(sql.ErrConnDone)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)
			tc.setupMock(mock)

			got, err := repo.Create(context.Background(), arg)
			if err != tc.wantErr {
				t.Fatalf("repo.Create(ctx, %+v) returned error: %v, want: %v", arg, err, tc.wantErr)
			}

			if tc.wantErr != nil {
				return
			}

			if diff := cmp.Diff(tc.want, got, decimalComparer); diff != "" {
				t.Errorf("repo.Create(ctx, %+v) returned unexpected difference (-want +got):\n%s", arg, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("OK", func(t *testing.T) {
		repo, mock := newMock(t)

		rows := sqlmock.NewRows(columns).AddRow(1, 7, "bob", "GYM-1", "50.00", "DD", "monthly", due, due)
		mock.ExpectQuery(regexp.QuoteMeta(getQuery)).WithArgs(1, 7).WillReturnRows(rows)

		got, err := repo.Get(context.Background(), 1, 7)
		require.NoError(t, err)
		require.Equal(t, domain.EntryTypeDirectDebit, got.TransactionType)
		require.Equal(t, domain.FrequencyMonthly, got.Frequency)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(getQuery)).WithArgs(1, 7).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 1, 7)
		require.Equal(t, domain.ErrMandateNotFound, err)
	})
}

func TestList(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo, mock := newMock(t)

	rows := sqlmock.NewRows(columns).
		AddRow(1, 7, "bob", "GYM-1", "50.00", "SO", "daily", due, due).
		AddRow(2, 7, "carol", "RENT", "700.00", "DD", "monthly", due, due)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WithArgs(7).WillReturnRows(rows)

	got, err := repo.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)
}

func TestDue(t *testing.T) {
	asOf := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("TruncatesAsOf", func(t *testing.T) {
		repo, mock := newMock(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, 7, "bob", "GYM-1", "50.00", "SO", "daily", asOf.AddDate(0, 0, -2), asOf)
		mock.ExpectQuery(regexp.QuoteMeta(dueQuery)).WithArgs(asOf).WillReturnRows(rows)

		got, err := repo.Due(context.Background(), asOf.Add(13*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, asOf.AddDate(0, 0, -2), got[0].NextPaymentDate)
	})

	t.Run("InternalError", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(dueQuery)).WithArgs(asOf).WillReturnError(sql.ErrConnDone)

		_, err := repo.Due(context.Background(), asOf)
		require.Equal(t, errorspkg.ErrInternal, err)
	})
}

func TestDelete(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).WithArgs(1, 7).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 1, 7))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).WithArgs(1, 7).WillReturnResult(sqlmock.NewResult(0, 0))

		require.Equal(t, domain.ErrMandateNotFound, repo.Delete(context.Background(), 1, 7))
	})
}

func TestAdvance(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	t.Run("OK", func(t *testing.T) {
		repo, mock := newMock(t)

		rows := sqlmock.NewRows(columns).AddRow(1, 7, "bob", "GYM-1", "50.00", "SO", "daily", to, from)
		mock.ExpectQuery(regexp.QuoteMeta(advanceQuery)).WithArgs(1, from, to).WillReturnRows(rows)

		got, err := repo.Advance(context.Background(), 1, from, to)
		require.NoError(t, err)
		require.Equal(t, to, got.NextPaymentDate)
	})

	t.Run("NotDue", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(advanceQuery)).WithArgs(1, from, to).WillReturnError(sql.ErrNoRows)

		_, err := repo.Advance(context.Background(), 1, from, to)
		require.Equal(t, domain.ErrMandateNotDue, err)
	})
}
