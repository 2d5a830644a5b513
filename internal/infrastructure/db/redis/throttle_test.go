package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newThrottleUnderTest(t *testing.T, maxFailures int, window time.Duration) (*SignInThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSignInThrottle(client, maxFailures, window), mr
}

func TestSignInThrottle_AllowsUnderLimit(t *testing.T) {
	throttle, _ := newThrottleUnderTest(t, 3, time.Minute)
	ctx := context.Background()

	allowed, err := throttle.Allow(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected fresh email to be allowed")
	}

	for i := 0; i < 2; i++ {
		if err := throttle.MarkFailure(ctx, "a@example.com"); err != nil {
			t.Fatalf("MarkFailure returned error: %v", err)
		}
	}
	allowed, err = throttle.Allow(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected email under the limit to be allowed")
	}
}

func TestSignInThrottle_BlocksAtLimit(t *testing.T) {
	throttle, _ := newThrottleUnderTest(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := throttle.MarkFailure(ctx, "b@example.com"); err != nil {
			t.Fatalf("MarkFailure returned error: %v", err)
		}
	}

	allowed, err := throttle.Allow(ctx, "b@example.com")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if allowed {
		t.Fatalf("expected email at the limit to be blocked")
	}

	// Another email is unaffected.
	allowed, err = throttle.Allow(ctx, "c@example.com")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected unrelated email to be allowed")
	}
}

func TestSignInThrottle_ResetClearsCounter(t *testing.T) {
	throttle, _ := newThrottleUnderTest(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_ = throttle.MarkFailure(ctx, "d@example.com")
	}
	if allowed, _ := throttle.Allow(ctx, "d@example.com"); allowed {
		t.Fatalf("expected block before reset")
	}

	if err := throttle.Reset(ctx, "d@example.com"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if allowed, _ := throttle.Allow(ctx, "d@example.com"); !allowed {
		t.Fatalf("expected allow after reset")
	}
}

func TestSignInThrottle_WindowExpiry(t *testing.T) {
	throttle, mr := newThrottleUnderTest(t, 1, time.Minute)
	ctx := context.Background()

	if err := throttle.MarkFailure(ctx, "e@example.com"); err != nil {
		t.Fatalf("MarkFailure returned error: %v", err)
	}
	if allowed, _ := throttle.Allow(ctx, "e@example.com"); allowed {
		t.Fatalf("expected block inside the window")
	}

	mr.FastForward(2 * time.Minute)

	if allowed, _ := throttle.Allow(ctx, "e@example.com"); !allowed {
		t.Fatalf("expected counter to expire with the window")
	}
}
