package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the lock could not be taken within MaxWait.
var ErrNotAcquired = errors.New("lock: not acquired")

// FactorTableKey serialises writes to the commission factor table.
const FactorTableKey = "commission:factor-table"

var releaseScript = redis.NewScript(`if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`)

// Locker provides a Redis-backed distributed lock.
type Locker struct {
	R            *redis.Client
	Prefix       string
	RetryBackoff time.Duration
	// MaxWait bounds how long WithLock retries. Zero waits until ctx is done.
	MaxWait time.Duration
}

// WithLock executes fn while holding a lock for the provided key. The lock is
// released automatically even if fn returns an error and is only deleted when
// this holder still owns it.
func (l Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	if l.R == nil {
		return errors.New("lock: redis client not configured")
	}
	if fn == nil {
		return errors.New("lock: callback not provided")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	retry := l.RetryBackoff
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	waitCtx := ctx
	if l.MaxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.MaxWait)
		defer cancel()
	}

	fullKey := l.Prefix + key
	token := uuid.NewString()
	for {
		ok, err := l.R.SetNX(waitCtx, fullKey, token, ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil {
				return fmt.Errorf("%w: %s", ErrNotAcquired, key)
			}
			return err
		}
		if ok {
			defer l.release(fullKey, token)
			return fn(ctx)
		}
		timer := time.NewTimer(retry)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %s", ErrNotAcquired, key)
		case <-timer.C:
		}
	}
}

func (l Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = releaseScript.Run(ctx, l.R, []string{key}, token).Err()
}
