// Package lock serializes critical sections per key, across processes when
// backed by Redis and within one process otherwise.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrLockNotAcquired = errors.New("lock not acquired")

type Locker interface {
	// WithLock runs fn while holding key. It waits up to the locker's wait
	// budget and returns ErrLockNotAcquired when the key stays busy.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

const retryInterval = 50 * time.Millisecond

// WithLocks holds every key, in order, while fn runs. Callers pass keys in a
// stable order so overlapping key sets cannot deadlock.
func WithLocks(ctx context.Context, l Locker, keys []string, fn func(ctx context.Context) error) error {
	if len(keys) == 0 {
		return fn(ctx)
	}
	return l.WithLock(ctx, keys[0], func(ctx context.Context) error {
		return WithLocks(ctx, l, keys[1:], fn)
	})
}
