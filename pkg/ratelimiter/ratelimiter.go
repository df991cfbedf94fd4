package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openlearn/course-library/pkg/apperror"
)

// RateLimitError tells the caller how long to back off.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// Unwrap ties the error into the status mapping so a limiter error that slips
// past the dedicated 429 handling still answers 429, not 500.
func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

// Limiter implements simple redis-backed cooldowns. With a nil client every
// method is a no-op, so the limiter degrades gracefully when redis is not
// configured.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// Cooldown acquires a single-shot cooldown on key. The first caller within
// the window succeeds; everyone else gets a RateLimitError until it expires.
func (l *Limiter) Cooldown(ctx context.Context, key string, window time.Duration, message string) error {
	if l.rdb == nil {
		return nil
	}

	wasSet, err := l.rdb.SetNX(ctx, "cooldown:"+key, "locked", window).Result()
	if err != nil {
		return fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return nil
	}

	ttl, err := l.rdb.TTL(ctx, "cooldown:"+key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}

	return &RateLimitError{Message: message, RetryAfter: ttl}
}

// Strike records a failure against key. Once max strikes accumulate inside
// the window, Blocked reports a RateLimitError until the window lapses.
func (l *Limiter) Strike(ctx context.Context, key string, window time.Duration) error {
	if l.rdb == nil {
		return nil
	}

	count, err := l.rdb.Incr(ctx, "strikes:"+key).Result()
	if err != nil {
		return fmt.Errorf("failed to record strike in redis: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, "strikes:"+key, window).Err(); err != nil {
			return fmt.Errorf("failed to set strike window in redis: %w", err)
		}
	}

	return nil
}

// Blocked reports whether key has accumulated max or more strikes.
func (l *Limiter) Blocked(ctx context.Context, key string, max int64, message string) error {
	if l.rdb == nil {
		return nil
	}

	count, err := l.rdb.Get(ctx, "strikes:"+key).Int64()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read strikes from redis: %w", err)
	}
	if count < max {
		return nil
	}

	ttl, err := l.rdb.TTL(ctx, "strikes:"+key).Result()
	if err != nil || ttl < 0 {
		ttl = time.Minute
	}

	return &RateLimitError{Message: message, RetryAfter: ttl}
}

// Clear drops any strikes recorded against key.
func (l *Limiter) Clear(ctx context.Context, key string) error {
	if l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, "strikes:"+key).Err()
}
