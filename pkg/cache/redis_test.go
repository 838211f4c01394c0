package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestJSONRoundTripAndMiss(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	type page struct {
		Count int `json:"count"`
	}

	var got page
	assert.ErrorIs(t, rc.GetJSON(ctx, "menu:items:a", &got), ErrCacheMiss)

	require.NoError(t, rc.SetJSON(ctx, "menu:items:a", page{Count: 3}, time.Minute))
	require.NoError(t, rc.GetJSON(ctx, "menu:items:a", &got))
	assert.Equal(t, 3, got.Count)
}

func TestDeleteByPattern(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("menu:items:a", "1"))
	require.NoError(t, mr.Set("menu:items:b", "1"))
	require.NoError(t, mr.Set("lock:order:table:1", "x"))

	require.NoError(t, rc.DeleteByPattern(ctx, "menu:items:*"))
	assert.False(t, mr.Exists("menu:items:a"))
	assert.False(t, mr.Exists("menu:items:b"))
	assert.True(t, mr.Exists("lock:order:table:1"))

	require.NoError(t, rc.DeleteByPattern(ctx, "menu:items:*"))
}

func TestReleaseLockKeepsForeignToken(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	ok, err := rc.AcquireLock(ctx, "lock:order:table:3", "mine", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = rc.AcquireLock(ctx, "lock:order:table:3", "theirs", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.ReleaseLock(ctx, "lock:order:table:3", "theirs"))
	got, err := mr.Get("lock:order:table:3")
	require.NoError(t, err)
	assert.Equal(t, "mine", got)

	require.NoError(t, rc.ReleaseLock(ctx, "lock:order:table:3", "mine"))
	assert.False(t, mr.Exists("lock:order:table:3"))
}

func TestWithLockReleasesAfterRun(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	ran := false
	err := rc.WithLock(ctx, "lock:order:table:1", time.Minute, func() error {
		ran = true
		assert.True(t, mr.Exists("lock:order:table:1"))
		assert.Equal(t, time.Minute, mr.TTL("lock:order:table:1"))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists("lock:order:table:1"))
}

func TestWithLockReturnsFnError(t *testing.T) {
	rc, mr := newTestClient(t)
	boom := errors.New("boom")

	err := rc.WithLock(context.Background(), "lock:order:table:1", time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("lock:order:table:1"))
}

func TestWithLockHeldElsewhere(t *testing.T) {
	rc, mr := newTestClient(t)
	require.NoError(t, mr.Set("lock:order:table:1", "other-instance"))

	ran := false
	err := rc.WithLock(context.Background(), "lock:order:table:1", time.Minute, func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, ran)

	got, err := mr.Get("lock:order:table:1")
	require.NoError(t, err)
	assert.Equal(t, "other-instance", got)
}

func TestWithLockStoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})}
	t.Cleanup(func() { _ = rc.Close() })
	mr.Close()

	ran := false
	err := rc.WithLock(context.Background(), "lock:order:table:1", time.Minute, func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, ErrLockUnavailable)
	assert.NotErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, ran)
}
