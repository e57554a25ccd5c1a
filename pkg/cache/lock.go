package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrLockNotAcquired = errors.New("system busy, please try again later")

// Locker serializes work on a key across service instances.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}

type redisLocker struct {
	client   *RedisClient
	ttl      time.Duration
	attempts int
	backoff  time.Duration
}

func NewRedisLocker(client *RedisClient) Locker {
	return &redisLocker{
		client:   client,
		ttl:      5 * time.Second,
		attempts: 3,
		backoff:  100 * time.Millisecond,
	}
}

func (l *redisLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	value := uuid.New().String()

	acquired := false
	for i := 0; i < l.attempts; i++ {
		ok, err := l.client.AcquireLock(ctx, key, value, l.ttl)
		if err != nil {
			return errors.Wrap(err, "acquire lock")
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.backoff):
		}
	}
	if !acquired {
		return ErrLockNotAcquired
	}
	defer l.client.ReleaseLock(context.Background(), key, value)

	return fn()
}

type noopLocker struct{}

// NewNoopLocker runs fn directly. Writes are last-write-wins.
func NewNoopLocker() Locker { return noopLocker{} }

func (noopLocker) WithLock(_ context.Context, _ string, fn func() error) error { return fn() }
