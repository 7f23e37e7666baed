package ledgerservice

import (
	"context"
	"testing"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name        string
		buildStubs  func(repo *MockRepo)
		wantBalance decimal.Decimal
		wantErr     error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Latest(gomock.Any(), gomock.Eq(int32(1))).
					Times(1).
					Return(domain.Entry{ID: 9, AccountID: 1, Balance: decimal.RequireFromString("750")}, nil)
			},
			wantBalance: decimal.RequireFromString("750"),
		},
		{
			name: "NoLedgerHistory",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Latest(gomock.Any(), gomock.Eq(int32(1))).
					Times(1).
					Return(domain.Entry{}, domain.ErrNoLedgerHistory)
			},
			wantErr: domain.ErrNoLedgerHistory,
		},
		{
			name: "InternalError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Latest(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Entry{}, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			got, err := service.Resolve(context.Background(), 1)
			if err != tc.wantErr {
				t.Fatalf("service.Resolve(ctx, 1) returned error: %v, want: %v", err, tc.wantErr)
			}

			if !got.Equal(tc.wantBalance) {
				t.Errorf("service.Resolve(ctx, 1) = %v, want %v", got, tc.wantBalance)
			}
		})
	}
}

func TestStatement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entries := []domain.Entry{{ID: 3, AccountID: 1}, {ID: 2, AccountID: 1}}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq(int32(5)), gomock.Eq(int32(10))).
		Times(1).
		Return(entries, nil)

	service := New(repo)

	got, err := service.Statement(context.Background(), 1, 5, 3)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}
