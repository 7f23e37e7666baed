package lockpkg

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	ttl := time.Minute

	t.Run("AcquireAndRelease", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		locker := NewRedisLocker(client, "pet-ledger:")

		mock.ExpectSetNX("pet-ledger:tick", locker.token, ttl).SetVal(true)
		mock.ExpectEval(releaseScript, []string{"pet-ledger:tick"}, locker.token).SetVal(int64(1))

		ok, err := locker.Acquire(ctx, "tick", ttl)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, locker.Release(ctx, "tick"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyHeld", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		locker := NewRedisLocker(client, "pet-ledger:")

		mock.ExpectSetNX("pet-ledger:tick", locker.token, ttl).SetVal(false)

		ok, err := locker.Acquire(ctx, "tick", ttl)
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReleaseTakenOver", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		locker := NewRedisLocker(client, "pet-ledger:")

		mock.ExpectEval(releaseScript, []string{"pet-ledger:tick"}, locker.token).SetVal(int64(0))

		err := locker.Release(ctx, "tick")
		require.ErrorIs(t, err, ErrNotHeld)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReleaseExpired", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		locker := NewRedisLocker(client, "pet-ledger:")

		mock.ExpectEval(releaseScript, []string{"pet-ledger:tick"}, locker.token).SetVal(int64(0))

		err := locker.Release(ctx, "tick")
		require.ErrorIs(t, err, ErrNotHeld)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReleaseError", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		locker := NewRedisLocker(client, "pet-ledger:")

		mock.ExpectEval(releaseScript, []string{"pet-ledger:tick"}, locker.token).SetErr(redis.ErrClosed)

		err := locker.Release(ctx, "tick")
		require.ErrorIs(t, err, redis.ErrClosed)
		require.NotErrorIs(t, err, ErrNotHeld)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	locker := NewLocalLocker()
	locker.now = func() time.Time { return now }

	ok, err := locker.Acquire(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = locker.Acquire(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	now = now.Add(2 * time.Minute)

	ok, err = locker.Acquire(ctx, "tick", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Release(ctx, "tick"))
	require.ErrorIs(t, locker.Release(ctx, "tick"), ErrNotHeld)
}
