package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per (ip, email) pair in Redis
// and blocks further attempts once the limit is reached within the window.
// Throttled requests fail with the same generic credentials error so the
// limiter leaks nothing about account existence.
type LoginThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// NewLoginThrottle constructs a throttle.
func NewLoginThrottle(client *redis.Client, limit int64, window time.Duration, logger *slog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, limit: limit, window: window, logger: logger}
}

func (t *LoginThrottle) key(ip, email string) string {
	return fmt.Sprintf("login_fail:%s:%s", ip, email)
}

// Allow reports whether another attempt is permitted. Redis errors allow the
// attempt; the throttle is a hardening layer, not an availability dependency.
func (t *LoginThrottle) Allow(ctx context.Context, ip, email string) (bool, error) {
	count, err := t.client.Get(ctx, t.key(ip, email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		if t.logger != nil {
			t.logger.Warn("login throttle read", slog.Any("error", err))
		}
		return true, err
	}
	return count < t.limit, nil
}

// RecordFailure bumps the failure counter, starting the window on the first
// failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, ip, email string) {
	key := t.key(ip, email)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("login throttle record", slog.Any("error", err))
		}
		return
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil && t.logger != nil {
			t.logger.Warn("login throttle expire", slog.Any("error", err))
		}
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, ip, email string) {
	if err := t.client.Del(ctx, t.key(ip, email)).Err(); err != nil && t.logger != nil {
		t.logger.Warn("login throttle reset", slog.Any("error", err))
	}
}
