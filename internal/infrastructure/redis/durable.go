package redis

import (
	"context"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
)

// DurableCache implements ports.DurableCache on Redis. Entries are written
// without a Redis TTL: expiration is applied passively by the cache store at
// read time, which is what allows deliberate stale reads after the freshness
// window has passed.
type DurableCache struct {
	r redis.Cmdable
	// key prefix namespacing this deployment's entries
	prefix string
}

// NewDurableCache creates a Redis-backed durable cache medium.
func NewDurableCache(r redis.Cmdable, prefix string) *DurableCache {
	return &DurableCache{r: r, prefix: prefix}
}

var _ ports.DurableCache = (*DurableCache)(nil)

func (c *DurableCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *DurableCache) stripNamespace(key string) string {
	if c.prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, c.prefix+":")
}

// Read implements DurableCache.Read.
func (c *DurableCache) Read(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Write implements DurableCache.Write.
func (c *DurableCache) Write(ctx context.Context, key string, value []byte) error {
	return c.r.Set(ctx, c.namespaced(key), value, 0).Err()
}

// Delete implements DurableCache.Delete.
func (c *DurableCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, key := range keys {
		namespaced[i] = c.namespaced(key)
	}
	return c.r.Del(ctx, namespaced...).Err()
}

// Keys implements DurableCache.Keys using an iterative SCAN so large
// namespaces do not block Redis the way KEYS would.
func (c *DurableCache) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := c.namespaced(prefix) + "*"
	var keys []string
	iter := c.r.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, c.stripNamespace(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
