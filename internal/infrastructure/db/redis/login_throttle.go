package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
	defaultLockout     = 15 * time.Minute
)

// ThrottleConfig bounds failed logins per client key.
type ThrottleConfig struct {
	MaxAttempts int
	Window      time.Duration
	Lockout     time.Duration
}

// LoginThrottle counts failed logins per client key in Redis and locks the key
// out once MaxAttempts failures land inside Window.
// Key format: login:fail:<key> (counter), login:lock:<key> (lockout marker)
type LoginThrottle struct {
	client *redis.Client
	cfg    ThrottleConfig
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Zero config values fall back to the defaults.
func NewLoginThrottle(client *redis.Client, cfg ThrottleConfig) *LoginThrottle {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = defaultLockout
	}
	return &LoginThrottle{client: client, cfg: cfg}
}

// Locked returns the remaining lockout for key, or zero when it may log in.
func (t *LoginThrottle) Locked(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := t.client.PTTL(ctx, t.lockKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("throttle check: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

// RecordFailure counts a failed login and returns the lockout it triggered,
// or zero while the key is still under the limit.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) (time.Duration, error) {
	failKey := t.failKey(key)

	n, err := t.client.Incr(ctx, failKey).Result()
	if err != nil {
		return 0, fmt.Errorf("throttle record: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, failKey, t.cfg.Window).Err(); err != nil {
			return 0, fmt.Errorf("throttle window: %w", err)
		}
	}
	if n < int64(t.cfg.MaxAttempts) {
		return 0, nil
	}

	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, t.lockKey(key), "1", t.cfg.Lockout)
		pipe.Del(ctx, failKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("throttle lock: %w", err)
	}
	return t.cfg.Lockout, nil
}

// Reset clears the failure count and any lockout for key.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.failKey(key), t.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) failKey(key string) string {
	return fmt.Sprintf("login:fail:%s", key)
}

func (t *LoginThrottle) lockKey(key string) string {
	return fmt.Sprintf("login:lock:%s", key)
}
