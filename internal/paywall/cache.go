// AngelaMos | 2026
// cache.go

package paywall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// VerdictCache memoizes serialized verdicts under their fingerprint key.
// Get returns (nil, nil) on a miss. Implementations must be safe for
// concurrent readers and writers; concurrent misses for the same key may
// each recompute and redundantly write the same verdict.
type VerdictCache interface {
	Get(ctx context.Context, key string) (*AccessVerdict, error)
	Put(ctx context.Context, key string, verdict *AccessVerdict) error
}

// RedisVerdictCache stores verdicts in redis with no per-entry TTL;
// capacity bounding is delegated to the server's maxmemory eviction
// policy (allkeys-lru recommended).
type RedisVerdictCache struct {
	client *redis.Client
	prefix string
}

func NewRedisVerdictCache(client *redis.Client, prefix string) *RedisVerdictCache {
	return &RedisVerdictCache{client: client, prefix: prefix}
}

func (c *RedisVerdictCache) Get(
	ctx context.Context,
	key string,
) (*AccessVerdict, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var verdict AccessVerdict
	if err := json.Unmarshal(raw, &verdict); err != nil {
		return nil, fmt.Errorf("decode cached verdict: %w", err)
	}

	return &verdict, nil
}

func (c *RedisVerdictCache) Put(
	ctx context.Context,
	key string,
	verdict *AccessVerdict,
) error {
	raw, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	return nil
}

// Stats reports the number of cached verdicts under this cache's prefix.
func (c *RedisVerdictCache) Stats(ctx context.Context) (int64, error) {
	var (
		cursor uint64
		total  int64
	)
	for {
		keys, next, err := c.client.Scan(
			ctx, cursor, c.prefix+"*", 500,
		).Result()
		if err != nil {
			return 0, fmt.Errorf("cache scan: %w", err)
		}

		total += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}
