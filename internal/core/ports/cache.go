package ports

import (
	"context"
	"time"
)

// CacheStorage selects which backing medium a cache call targets.
type CacheStorage string

const (
	// CacheDurable survives process restarts and is shared across instances.
	CacheDurable CacheStorage = "durable"
	// CacheMemory lives for the current process only.
	CacheMemory CacheStorage = "memory"
)

// CacheOptions configure a single cache call. Duration is the freshness
// window applied at read time; it is never stored with the entry, so the
// same entry can be read with different thresholds.
type CacheOptions struct {
	Duration time.Duration
	Storage  CacheStorage
}

// CacheStore is the shared expiring key/value store under every data-access
// service. Reads never fail: absent, expired and malformed entries are all
// indistinguishable misses. Writes are best-effort; backend failures are
// logged and swallowed so caching is never a hard dependency for correctness.
type CacheStore interface {
	// Get returns the entry's data when present and younger than
	// opts.Duration; ok=false otherwise.
	Get(ctx context.Context, key string, opts CacheOptions) (data []byte, ok bool)
	// Set unconditionally overwrites the entry.
	Set(ctx context.Context, key string, data []byte, opts CacheOptions)
	// Remove deletes one key; missing keys are a no-op.
	Remove(ctx context.Context, key string, opts CacheOptions)
	// ClearByPrefix deletes every key starting with prefix.
	ClearByPrefix(ctx context.Context, prefix string, opts CacheOptions)
	// ClearAll deletes every key in the selected storage.
	ClearAll(ctx context.Context, opts CacheOptions)
}

// DurableCache is the raw medium behind CacheStore's durable storage.
// Implementations store opaque serialized entries with no TTL of their own;
// expiration is applied passively by the store at read time.
type DurableCache interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// Keys returns every stored key beginning with prefix; an empty prefix
	// matches all keys.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
