package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// SignInThrottle counts consecutive failed sign-ins per email in Redis.
// Key format: signin:fail:<email>. A successful sign-in clears the counter;
// the counter itself expires after the configured window.
type SignInThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewSignInThrottle creates a throttle wrapping the given Redis client.
// Non-positive limits fall back to the defaults.
func NewSignInThrottle(client *redis.Client, maxFailures int, window time.Duration) *SignInThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SignInThrottle{client: client, maxFailures: int64(maxFailures), window: window}
}

// Allow reports whether the email is still under the failure limit.
func (t *SignInThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxFailures, nil
}

// MarkFailure bumps the failure counter and refreshes its expiry.
func (t *SignInThrottle) MarkFailure(ctx context.Context, email string) error {
	key := t.key(email)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle mark: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *SignInThrottle) key(email string) string {
	return "signin:fail:" + email
}
