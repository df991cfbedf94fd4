package ratelimiter

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openlearn/course-library/pkg/apperror"
)

func testLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), mr
}

func TestCooldown(t *testing.T) {
	limiter, mr := testLimiter(t)
	ctx := context.Background()

	if err := limiter.Cooldown(ctx, "comment:u1", 10*time.Second, "slow down"); err != nil {
		t.Fatalf("first Cooldown() error = %v", err)
	}

	err := limiter.Cooldown(ctx, "comment:u1", 10*time.Second, "slow down")
	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("second Cooldown() error = %v, want RateLimitError", err)
	}
	if rateLimitErr.Message != "slow down" {
		t.Errorf("message = %q", rateLimitErr.Message)
	}
	if rateLimitErr.RetryAfter <= 0 || rateLimitErr.RetryAfter > 10*time.Second {
		t.Errorf("RetryAfter = %v, want within the window", rateLimitErr.RetryAfter)
	}

	// Another key is unaffected.
	if err := limiter.Cooldown(ctx, "comment:u2", 10*time.Second, "slow down"); err != nil {
		t.Errorf("Cooldown() for other key error = %v", err)
	}

	mr.FastForward(11 * time.Second)
	if err := limiter.Cooldown(ctx, "comment:u1", 10*time.Second, "slow down"); err != nil {
		t.Errorf("Cooldown() after expiry error = %v", err)
	}
}

func TestStrikeBlockedClear(t *testing.T) {
	limiter, mr := testLimiter(t)
	ctx := context.Background()
	const key = "login:a@example.com"

	if err := limiter.Blocked(ctx, key, 3, "blocked"); err != nil {
		t.Fatalf("Blocked() with no strikes error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := limiter.Strike(ctx, key, time.Minute); err != nil {
			t.Fatalf("Strike() error = %v", err)
		}
	}
	if err := limiter.Blocked(ctx, key, 3, "blocked"); err != nil {
		t.Fatalf("Blocked() below max error = %v", err)
	}

	if err := limiter.Strike(ctx, key, time.Minute); err != nil {
		t.Fatalf("Strike() error = %v", err)
	}
	err := limiter.Blocked(ctx, key, 3, "blocked")
	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("Blocked() at max error = %v, want RateLimitError", err)
	}
	if rateLimitErr.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", rateLimitErr.RetryAfter)
	}

	if err := limiter.Clear(ctx, key); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := limiter.Blocked(ctx, key, 3, "blocked"); err != nil {
		t.Errorf("Blocked() after Clear() error = %v", err)
	}

	// Strikes also lapse with the window.
	_ = limiter.Strike(ctx, key, time.Minute)
	_ = limiter.Strike(ctx, key, time.Minute)
	_ = limiter.Strike(ctx, key, time.Minute)
	mr.FastForward(2 * time.Minute)
	if err := limiter.Blocked(ctx, key, 3, "blocked"); err != nil {
		t.Errorf("Blocked() after window error = %v", err)
	}
}

func TestNilClientIsNoOp(t *testing.T) {
	limiter := New(nil)
	ctx := context.Background()

	if err := limiter.Cooldown(ctx, "k", time.Second, "m"); err != nil {
		t.Errorf("Cooldown() error = %v", err)
	}
	if err := limiter.Strike(ctx, "k", time.Second); err != nil {
		t.Errorf("Strike() error = %v", err)
	}
	if err := limiter.Blocked(ctx, "k", 1, "m"); err != nil {
		t.Errorf("Blocked() error = %v", err)
	}
	if err := limiter.Clear(ctx, "k"); err != nil {
		t.Errorf("Clear() error = %v", err)
	}
}

func TestRateLimitErrorStatus(t *testing.T) {
	err := &RateLimitError{Message: "blocked", RetryAfter: time.Minute}

	if !errors.Is(err, apperror.ErrRateLimitExceeded) {
		t.Error("RateLimitError does not wrap the rate limit sentinel")
	}
	if got := apperror.MapErrorToStatus(err); got != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", got, http.StatusTooManyRequests)
	}
}
