package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCounter(t *testing.T) (*RedisCounter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCounterFromClient(client), mr
}

func TestRedisCounter_Incr(t *testing.T) {
	counter, _ := newTestRedisCounter(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, resetAt, err := counter.Incr(ctx, "user-a", 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, want, count)
		assert.True(t, resetAt.After(time.Now()), "resetAt must be in the future")
	}
}

func TestRedisCounter_KeysAreIsolatedPerIdentity(t *testing.T) {
	counter, _ := newTestRedisCounter(t)
	ctx := context.Background()

	_, _, err := counter.Incr(ctx, "user-a", 24*time.Hour)
	require.NoError(t, err)
	_, _, err = counter.Incr(ctx, "user-a", 24*time.Hour)
	require.NoError(t, err)

	count, _, err := counter.Incr(ctx, "user-b", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCounter_SetsExpiry(t *testing.T) {
	counter, mr := newTestRedisCounter(t)
	ctx := context.Background()

	_, resetAt, err := counter.Incr(ctx, "user-a", time.Hour)
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	ttl := mr.TTL(keys[0])
	assert.Greater(t, ttl, time.Duration(0), "window key must expire")
	assert.LessOrEqual(t, ttl, time.Hour)
	assert.WithinDuration(t, resetAt, time.Now().Add(ttl), 2*time.Second)
}

func TestRedisCounter_StoreDownIsAnError(t *testing.T) {
	counter, mr := newTestRedisCounter(t)
	mr.Close()

	_, _, err := counter.Incr(context.Background(), "user-a", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis incr failed")
}

func TestGate_OverRedisCounter(t *testing.T) {
	counter, _ := newTestRedisCounter(t)
	gate := NewGate(counter, 2, 24*time.Hour)
	ctx := context.Background()

	first, err := gate.Check(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	second, err := gate.Check(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, int64(0), second.Remaining)

	third, err := gate.Check(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
}
