// Package lockpkg provides leases that keep a job running on a single instance at a time.
package lockpkg

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotHeld indicates that the lease is not held by the caller.
var ErrNotHeld = errors.New("lease not held")

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Locker acquires and releases named leases.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisLocker holds leases as redis keys set with NX and a TTL.
//
// The key value is a per-instance token so a lease that expired and was taken
// by another instance is never released by the previous holder.
type RedisLocker struct {
	client *redis.Client
	token  string
	prefix string
}

// NewRedisLocker returns RedisLocker.
func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{
		client: client,
		token:  uuid.NewString(),
		prefix: prefix,
	}
}

// Acquire tries to take the lease for ttl and reports whether it was taken.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+key, l.token, ttl).Result()
}

// Release gives the lease back if it is still held by this locker.
func (l *RedisLocker) Release(ctx context.Context, key string) error {
	n, err := l.client.Eval(ctx, releaseScript, []string{l.prefix + key}, l.token).Int64()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotHeld
	}

	return nil
}

// LocalLocker holds leases in process memory.
type LocalLocker struct {
	mu     sync.Mutex
	leases map[string]time.Time
	now    func() time.Time
}

// NewLocalLocker returns LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		leases: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Acquire tries to take the lease for ttl and reports whether it was taken.
func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if expiresAt, ok := l.leases[key]; ok && now.Before(expiresAt) {
		return false, nil
	}

	l.leases[key] = now.Add(ttl)

	return true, nil
}

// Release gives the lease back.
func (l *LocalLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.leases[key]; !ok {
		return ErrNotHeld
	}

	delete(l.leases, key)

	return nil
}
