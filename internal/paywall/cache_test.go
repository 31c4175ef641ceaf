// AngelaMos | 2026
// cache_test.go

package paywall

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisVerdictCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisVerdictCache(client, "paywall:verdict:"), mr
}

func TestRedisVerdictCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	verdict := &AccessVerdict{
		Content: ContentInfo{
			ID:           "c1",
			Title:        "Deep Dive",
			Body:         "...",
			RequiredPlan: "premium",
		},
		Granted:  false,
		Advisory: AdvisoryFallbackEligible,
	}

	key := CacheKey("c1", "u1")
	require.NoError(t, cache.Put(ctx, key, verdict))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, verdict, got)
}

func TestRedisVerdictCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Get(context.Background(), CacheKey("c1", "u1"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisVerdictCachePrefixAndNoTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	key := CacheKey("c1", "u1")
	require.NoError(t, cache.Put(ctx, key, &AccessVerdict{Granted: true}))

	stored := "paywall:verdict:" + key
	assert.True(t, mr.Exists(stored))
	assert.Zero(t, mr.TTL(stored))
}

func TestRedisVerdictCacheStats(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, cache.Put(
			ctx,
			CacheKey(id, "u1"),
			&AccessVerdict{Granted: true},
		))
	}

	count, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
