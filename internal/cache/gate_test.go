package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client), mr
}

func TestGate_AcquireUpToLimit(t *testing.T) {
	c, _ := setupTestCache(t)
	gate := NewGate(c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := gate.Acquire(ctx, "gate:test", 3, 0)
		require.NoError(t, err)
		assert.True(t, ok, "acquisition %d should be admitted", i+1)
	}

	ok, err := gate.Acquire(ctx, "gate:test", 3, 0)
	require.NoError(t, err)
	assert.False(t, ok, "acquisition past the limit should be refused")
}

func TestGate_SeedCountsTowardLimit(t *testing.T) {
	c, _ := setupTestCache(t)
	gate := NewGate(c)
	ctx := context.Background()

	// Four slots already taken elsewhere, limit five: one left.
	ok, err := gate.Acquire(ctx, "gate:seeded", 5, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Acquire(ctx, "gate:seeded", 5, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGate_ReleaseFreesSlot(t *testing.T) {
	c, _ := setupTestCache(t)
	gate := NewGate(c)
	ctx := context.Background()

	ok, err := gate.Acquire(ctx, "gate:release", 1, 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = gate.Acquire(ctx, "gate:release", 1, 0)
	require.NoError(t, err)
	require.False(t, ok)

	gate.Release(ctx, "gate:release")

	ok, err = gate.Acquire(ctx, "gate:release", 1, 0)
	require.NoError(t, err)
	assert.True(t, ok, "released slot should be reusable")
}

func TestGate_RefusedAcquireLeavesCounterIntact(t *testing.T) {
	c, mr := setupTestCache(t)
	gate := NewGate(c)
	ctx := context.Background()

	ok, err := gate.Acquire(ctx, "gate:counter", 1, 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = gate.Acquire(ctx, "gate:counter", 1, 0)
	require.NoError(t, err)
	require.False(t, ok)

	// The refused attempt must have undone its increment.
	mr.CheckGet(t, "gate:counter", "1")
}

func TestGate_DegradesToAdmitting(t *testing.T) {
	ctx := context.Background()

	var nilGate *Gate
	ok, err := nilGate.Acquire(ctx, "gate:nil", 1, 0)
	require.NoError(t, err)
	assert.True(t, ok, "nil gate should always admit")

	gate := NewGate(nil)
	ok, err = gate.Acquire(ctx, "gate:nilcache", 1, 0)
	require.NoError(t, err)
	assert.True(t, ok, "gate without a cache should always admit")

	c, mr := setupTestCache(t)
	mr.Close()
	gate = NewGate(c)
	ok, err = gate.Acquire(ctx, "gate:down", 1, 0)
	assert.True(t, ok, "unreachable cache should admit, not block")
	assert.Error(t, err, "the cache failure should surface for logging")
}
