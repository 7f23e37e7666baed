package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/lockpkg"
)

func TestSchedulerRun(t *testing.T) {
	ttl := time.Minute
	report := domain.TickReport{AsOf: asOf, Settled: []domain.ItemResult{}, Failed: []domain.ItemResult{}}
	errLock := errors.New("redis unavailable")

	testCases := []struct {
		name          string
		buildStubs    func(ticker *MockTicker, locker *MockLocker)
		checkResponse func(t *testing.T, got domain.TickReport, err error)
	}{
		{
			name: "OK",
			buildStubs: func(ticker *MockTicker, locker *MockLocker) {
				gomock.InOrder(
					locker.EXPECT().Acquire(gomock.Any(), gomock.Eq(TickLease), gomock.Eq(ttl)).Times(1).Return(true, nil),
					ticker.EXPECT().RunTick(gomock.Any(), gomock.Eq(asOf)).Times(1).Return(report, nil),
					locker.EXPECT().Release(gomock.Any(), gomock.Eq(TickLease)).Times(1).Return(nil),
				)
			},
			checkResponse: func(t *testing.T, got domain.TickReport, err error) {
				require.NoError(t, err)
				require.Equal(t, report, got)
			},
		},
		{
			name: "LeaseHeld",
			buildStubs: func(ticker *MockTicker, locker *MockLocker) {
				locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(false, nil)
				ticker.EXPECT().RunTick(gomock.Any(), gomock.Any()).Times(0)
				locker.EXPECT().Release(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TickReport, err error) {
				require.ErrorIs(t, err, ErrTickInProgress)
			},
		},
		{
			name: "AcquireError",
			buildStubs: func(ticker *MockTicker, locker *MockLocker) {
				locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(false, errLock)
				ticker.EXPECT().RunTick(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TickReport, err error) {
				require.ErrorIs(t, err, errLock)
			},
		},
		{
			name: "ReleaseErrorKeepsReport",
			buildStubs: func(ticker *MockTicker, locker *MockLocker) {
				locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(true, nil)
				ticker.EXPECT().RunTick(gomock.Any(), gomock.Any()).Times(1).Return(report, nil)
				locker.EXPECT().Release(gomock.Any(), gomock.Any()).Times(1).Return(lockpkg.ErrNotHeld)
			},
			checkResponse: func(t *testing.T, got domain.TickReport, err error) {
				require.NoError(t, err)
				require.Equal(t, report, got)
			},
		},
		{
			name: "TickError",
			buildStubs: func(ticker *MockTicker, locker *MockLocker) {
				locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(true, nil)
				ticker.EXPECT().RunTick(gomock.Any(), gomock.Any()).Times(1).Return(report, ErrFetchDue)
				locker.EXPECT().Release(gomock.Any(), gomock.Any()).Times(1).Return(nil)
			},
			checkResponse: func(t *testing.T, got domain.TickReport, err error) {
				require.ErrorIs(t, err, ErrFetchDue)
				require.Equal(t, report, got)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ticker := NewMockTicker(ctrl)
			locker := NewMockLocker(ctrl)
			tc.buildStubs(ticker, locker)

			s := NewScheduler(ticker, locker, zerolog.Nop(), SchedulerConfig{Schedule: "@hourly", LockTTL: ttl})

			got, err := s.Run(context.Background(), asOf)
			tc.checkResponse(t, got, err)
		})
	}
}

type countingTicker struct {
	calls chan time.Time
}

func (c countingTicker) RunTick(_ context.Context, asOf time.Time) (domain.TickReport, error) {
	c.calls <- asOf
	return domain.TickReport{AsOf: domain.DateOf(asOf)}, nil
}

func TestSchedulerStart(t *testing.T) {
	t.Run("RunOnStart", func(t *testing.T) {
		ticker := countingTicker{calls: make(chan time.Time, 1)}
		locker := lockpkg.NewLocalLocker()

		s := NewScheduler(ticker, locker, zerolog.Nop(), SchedulerConfig{Schedule: "@daily", RunOnStart: true})
		s.now = func() time.Time { return asOf }

		require.NoError(t, s.Start())
		defer s.Stop()

		select {
		case got := <-ticker.calls:
			require.Equal(t, asOf, got)
		case <-time.After(5 * time.Second):
			t.Fatal("tick did not run on start")
		}
	})

	t.Run("InvalidSchedule", func(t *testing.T) {
		ticker := countingTicker{calls: make(chan time.Time, 1)}

		s := NewScheduler(ticker, lockpkg.NewLocalLocker(), zerolog.Nop(), SchedulerConfig{Schedule: "every tuesday"})
		require.Error(t, s.Start())
	})
}
