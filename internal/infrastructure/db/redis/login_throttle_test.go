package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupThrottle(t *testing.T, cfg ThrottleConfig) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLoginThrottle(client, cfg), mr
}

func TestLoginThrottle_LocksAfterMaxAttempts(t *testing.T) {
	throttle, _ := setupThrottle(t, ThrottleConfig{MaxAttempts: 3, Window: time.Minute, Lockout: 10 * time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		lock, err := throttle.RecordFailure(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Zero(t, lock)
	}

	locked, err := throttle.Locked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Zero(t, locked)

	lock, err := throttle.RecordFailure(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, lock)

	locked, err = throttle.Locked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Greater(t, locked, 9*time.Minute)

	other, err := throttle.Locked(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Zero(t, other, "lockout must be per key")
}

func TestLoginThrottle_LockoutExpires(t *testing.T) {
	throttle, mr := setupThrottle(t, ThrottleConfig{MaxAttempts: 1, Window: time.Minute, Lockout: time.Minute})
	ctx := context.Background()

	_, err := throttle.RecordFailure(ctx, "client")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	locked, err := throttle.Locked(ctx, "client")
	require.NoError(t, err)
	assert.Zero(t, locked)
}

func TestLoginThrottle_WindowExpiresFailures(t *testing.T) {
	throttle, mr := setupThrottle(t, ThrottleConfig{MaxAttempts: 2, Window: time.Minute, Lockout: time.Hour})
	ctx := context.Background()

	_, err := throttle.RecordFailure(ctx, "client")
	require.NoError(t, err)
	assert.True(t, mr.Exists("login:fail:client"))

	mr.FastForward(2 * time.Minute)

	lock, err := throttle.RecordFailure(ctx, "client")
	require.NoError(t, err)
	assert.Zero(t, lock, "failures outside the window must not count")
}

func TestLoginThrottle_Reset(t *testing.T) {
	throttle, mr := setupThrottle(t, ThrottleConfig{MaxAttempts: 1, Window: time.Minute, Lockout: time.Hour})
	ctx := context.Background()

	_, err := throttle.RecordFailure(ctx, "client")
	require.NoError(t, err)
	require.True(t, mr.Exists("login:lock:client"))

	require.NoError(t, throttle.Reset(ctx, "client"))

	locked, err := throttle.Locked(ctx, "client")
	require.NoError(t, err)
	assert.Zero(t, locked)
	assert.False(t, mr.Exists("login:fail:client"))
}

func TestLoginThrottle_StoreDown(t *testing.T) {
	throttle, mr := setupThrottle(t, ThrottleConfig{})
	mr.Close()

	_, err := throttle.Locked(context.Background(), "client")
	assert.Error(t, err)
}
