package accountrepo

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
		"id", "username", "hashed_password", "full_name", "email", "role",
		"sort_code", "account_number", "created_at",
	}
	entryColumns = []string{
		"id", "account_id", "prev_entry_id", "entry_date", "entry_type", "sort_code",
		"account_number", "description", "debit_amount", "credit_amount", "balance", "created_at",
	}
)

func randomParams() domain.OpenAccountParams {
	return domain.OpenAccountParams{
		Username:       "alice",
		HashedPassword: "hash",
		FullName:       "Alice Smith",
		Email:          "alice@example.com",
		Role:           domain.RoleClient,
		Routing:        domain.Routing{SortCode: "123456", AccountNumber: "12345678"},
		OpeningBalance: decimal.RequireFromString("800"),
		OpeningDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func accountRow(arg domain.OpenAccountParams, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		7, arg.Username, arg.HashedPassword, arg.FullName, arg.Email, arg.Role,
		arg.Routing.SortCode, arg.Routing.AccountNumber, createdAt,
	)
}

func TestCreate(t *testing.T) {
	arg := randomParams()
	createdAt := time.Now().UTC().Truncate(time.Second)

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "OK",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WithArgs(arg.Username, arg.HashedPassword, arg.FullName, arg.Email, arg.Role,
						arg.Routing.SortCode, arg.Routing.AccountNumber).
					WillReturnRows(accountRow(arg, createdAt))
			},
		},
		{
			name: "UsernameAlreadyExists",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_username_key"})
			},
			wantErr: domain.ErrUsernameAlreadyExists,
		},
		{
			name: "EmailAlreadyExists",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_email_key"})
			},
			wantErr: domain.ErrEmailAlreadyExists,
		},
		{
			name: "RoutingAlreadyExists",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_sort_code_account_number_key"})
			},
			wantErr: domain.ErrRoutingAlreadyExists,
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
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tc.setupMock(mock)

			got, err := NewRepoPGS(db).Create(context.Background(), arg)
			if err != tc.wantErr {
				t.Fatalf("repo.Create(ctx, %+v) returned error: %v, want: %v", arg, err, tc.wantErr)
			}

			require.NoError(t, mock.ExpectationsWereMet())

			if tc.wantErr != nil {
				return
			}

			want := domain.Account{
				ID:             7,
				Username:       arg.Username,
				HashedPassword: arg.HashedPassword,
				FullName:       arg.FullName,
				Email:          arg.Email,
				Role:           arg.Role,
				Routing:        arg.Routing,
				CreatedAt:      createdAt,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("repo.Create(ctx, %+v) returned unexpected difference (-want +got):\n%s", arg, diff)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	arg := randomParams()
	createdAt := time.Now().UTC().Truncate(time.Second)

	t.Run("OK", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(createQuery)).WillReturnRows(accountRow(arg, createdAt))
		mock.ExpectQuery("INSERT INTO entries").
			WithArgs(7, nil, arg.OpeningDate, "OPN", arg.Routing.SortCode, arg.Routing.AccountNumber,
				OpeningDescription, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(
				1, 7, nil, arg.OpeningDate, "OPN", arg.Routing.SortCode, arg.Routing.AccountNumber,
				OpeningDescription, "0.00", "800.00", "800.00", createdAt,
			))
		mock.ExpectCommit()

		got, err := NewRepoPGS(db).Open(context.Background(), arg)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())

		require.Equal(t, int32(7), got.Account.ID)
		require.Equal(t, arg.Routing, got.Account.Routing)
		require.True(t, got.Balance.Equal(arg.OpeningBalance))
	})

	t.Run("RollbackOnDuplicate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_username_key"})
		mock.ExpectRollback()

		_, err = NewRepoPGS(db).Open(context.Background(), arg)
		require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnEntryFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(createQuery)).WillReturnRows(accountRow(arg, createdAt))
		mock.ExpectQuery("INSERT INTO entries").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		_, err = NewRepoPGS(db).Open(context.Background(), arg)
		require.ErrorIs(t, err, errorspkg.ErrInternal)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetters(t *testing.T) {
	arg := randomParams()
	createdAt := time.Now().UTC().Truncate(time.Second)

	testCases := []struct {
		name    string
		query   string
		call    func(r *RepoPGS) (domain.Account, error)
		rows    *sqlmock.Rows
		err     error
		wantErr error
	}{
		{
			name:  "Get",
			query: getQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.Get(context.Background(), 7)
			},
			rows: accountRow(arg, createdAt),
		},
		{
			name:  "GetForUpdate",
			query: getForUpdateQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.GetForUpdate(context.Background(), 7)
			},
			rows: accountRow(arg, createdAt),
		},
		{
			name:  "GetByUsername",
			query: getByUsernameQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.GetByUsername(context.Background(), arg.Username)
			},
			rows: accountRow(arg, createdAt),
		},
		{
			name:  "GetByRouting",
			query: getByRoutingQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.GetByRouting(context.Background(), arg.Routing)
			},
			rows: accountRow(arg, createdAt),
		},
		{
			name:  "NotFound",
			query: getByRoutingQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.GetByRouting(context.Background(), domain.Routing{SortCode: "000000", AccountNumber: "00000000"})
			},
			err:     sql.ErrNoRows,
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:  "InternalError",
			query: getQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.Get(context.Background(), 7)
			},
			err:     sql.ErrConnDone,
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			exp := mock.ExpectQuery(regexp.QuoteMeta(tc.query))
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnRows(tc.rows)
			}

			got, err := tc.call(NewRepoPGS(db))
			if err != tc.wantErr {
				t.Fatalf("%s returned error: %v, want: %v", tc.name, err, tc.wantErr)
			}

			require.NoError(t, mock.ExpectationsWereMet())

			if tc.wantErr == nil {
				require.Equal(t, int32(7), got.ID)
				require.Equal(t, arg.Username, got.Username)
				require.Equal(t, arg.Routing, got.Routing)
			}
		})
	}
}
