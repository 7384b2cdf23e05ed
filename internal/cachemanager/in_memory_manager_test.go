package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, []byte]("test", DefaultExpiration, DefaultCleanupInterval)

	_, found := cache.Get(ctx, "missing")
	require.False(t, found)

	cache.Set(ctx, "key", []byte("payload"), time.Minute)
	value, found := cache.Get(ctx, "key")
	require.True(t, found)
	require.Equal(t, []byte("payload"), value)
}

func TestInMemoryExpiration(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "short", 1, 20*time.Millisecond)
	_, found := cache.Get(ctx, "short")
	require.True(t, found)

	require.Eventually(t, func() bool {
		_, found := cache.Get(ctx, "short")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestInMemoryDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)
	require.NoError(t, cache.Delete(ctx, "a", "b"))

	_, found := cache.Get(ctx, "a")
	require.False(t, found)
	_, found = cache.Get(ctx, "b")
	require.False(t, found)
}

func TestInMemoryFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, time.Minute)
	require.NoError(t, cache.Flush(ctx))

	_, found := cache.Get(ctx, "a")
	require.False(t, found)
}
