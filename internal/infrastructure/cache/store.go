package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// NoExpiry makes a read accept an entry of any age. It is how the stale
// fallback paths deliberately retrieve expired data.
const NoExpiry = time.Duration(1<<63 - 1)

// entry is the stored envelope. Timestamp is epoch milliseconds; the
// freshness window is supplied by each read, never persisted.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

func (e entry) freshAt(now time.Time, d time.Duration) bool {
	age := now.Sub(time.UnixMilli(e.Timestamp))
	return age < d
}

// Store implements ports.CacheStore over two backends: a durable medium
// (Redis in production) holding serialized entries, and a process-local map.
// Entries never expire on their own; staleness is checked at read time, so
// stale entries linger until overwritten or explicitly cleared.
type Store struct {
	durable ports.DurableCache
	memory  *memoryBackend
	logger  *logrus.Logger
	now     func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(durable ports.DurableCache, logger *logrus.Logger, opts ...Option) *Store {
	s := &Store{
		durable: durable,
		memory:  newMemoryBackend(),
		logger:  logger,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get implements ports.CacheStore. Absent, expired and malformed entries are
// all misses; Get never fails.
func (s *Store) Get(ctx context.Context, key string, opts ports.CacheOptions) ([]byte, bool) {
	now := s.now()

	if opts.Storage == ports.CacheMemory {
		e, ok := s.memory.read(key)
		if ok && e.freshAt(now, opts.Duration) {
			s.logger.WithField("key", key).Debug("memory cache hit")
			observeCacheRequest(ports.CacheMemory, true)
			return e.Data, true
		}
		observeCacheRequest(ports.CacheMemory, false)
		return nil, false
	}

	raw, ok, err := s.durable.Read(ctx, key)
	if err != nil {
		s.logger.WithField("key", key).WithError(err).Error("error reading cache")
		observeCacheRequest(ports.CacheDurable, false)
		return nil, false
	}
	if ok {
		var e entry
		if err := json.Unmarshal(raw, &e); err == nil && e.freshAt(now, opts.Duration) {
			s.logger.WithField("key", key).Debug("durable cache hit")
			observeCacheRequest(ports.CacheDurable, true)
			return e.Data, true
		}
	}
	observeCacheRequest(ports.CacheDurable, false)
	return nil, false
}

// Set implements ports.CacheStore. Write failures are logged and swallowed:
// caching is best-effort, never a hard dependency for correctness.
func (s *Store) Set(ctx context.Context, key string, data []byte, opts ports.CacheOptions) {
	e := entry{Data: data, Timestamp: s.now().UnixMilli()}

	if opts.Storage == ports.CacheMemory {
		s.memory.write(key, e)
		s.logger.WithField("key", key).Debug("cached in memory")
		return
	}

	raw, err := json.Marshal(e)
	if err != nil {
		s.logger.WithField("key", key).WithError(err).Error("error encoding cache entry")
		return
	}
	if err := s.durable.Write(ctx, key, raw); err != nil {
		s.logger.WithField("key", key).WithError(err).Error("error caching entry")
		return
	}
	s.logger.WithField("key", key).Debug("cached in durable storage")
}

// Remove implements ports.CacheStore; missing keys are a no-op.
func (s *Store) Remove(ctx context.Context, key string, opts ports.CacheOptions) {
	if opts.Storage == ports.CacheMemory {
		s.memory.delete(key)
		return
	}
	if err := s.durable.Delete(ctx, key); err != nil {
		s.logger.WithField("key", key).WithError(err).Error("error removing cache entry")
	}
}

// ClearByPrefix implements ports.CacheStore.
func (s *Store) ClearByPrefix(ctx context.Context, prefix string, opts ports.CacheOptions) {
	if opts.Storage == ports.CacheMemory {
		n := s.memory.deletePrefix(prefix)
		s.logger.WithFields(logrus.Fields{"prefix": prefix, "count": n}).Info("cleared memory cache entries")
		return
	}

	keys, err := s.durable.Keys(ctx, prefix)
	if err != nil {
		s.logger.WithField("prefix", prefix).WithError(err).Error("error listing cache keys")
		return
	}
	if len(keys) > 0 {
		if err := s.durable.Delete(ctx, keys...); err != nil {
			s.logger.WithField("prefix", prefix).WithError(err).Error("error clearing cache entries")
			return
		}
	}
	s.logger.WithFields(logrus.Fields{"prefix": prefix, "count": len(keys)}).Info("cleared durable cache entries")
}

// ClearAll implements ports.CacheStore.
func (s *Store) ClearAll(ctx context.Context, opts ports.CacheOptions) {
	if opts.Storage == ports.CacheMemory {
		s.memory.flush()
		s.logger.Info("cleared all memory cache")
		return
	}
	s.ClearByPrefix(ctx, "", opts)
}

// Get decodes a typed value out of the store. Methods cannot be generic, so
// typed access lives in package-level helpers.
func Get[T any](ctx context.Context, s *Store, key string, opts ports.CacheOptions) (T, bool) {
	var v T
	data, ok := s.Get(ctx, key, opts)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.WithField("key", key).WithError(err).Error("error decoding cache entry")
		return v, false
	}
	return v, true
}

// Set encodes a typed value into the store.
func Set[T any](ctx context.Context, s *Store, key string, v T, opts ports.CacheOptions) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WithField("key", key).WithError(err).Error("error encoding cache value")
		return
	}
	s.Set(ctx, key, data, opts)
}

// memoryBackend is the process-lifetime storage medium. Writes are
// last-write-wins; cached documents are idempotent snapshots, so overwrite
// races between concurrent misses are harmless.
type memoryBackend struct {
	mu    sync.RWMutex
	items map[string]entry
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{items: make(map[string]entry)}
}

func (m *memoryBackend) read(key string) (entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[key]
	return e, ok
}

func (m *memoryBackend) write(key string, e entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = e
}

func (m *memoryBackend) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

func (m *memoryBackend) deletePrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
			n++
		}
	}
	return n
}

func (m *memoryBackend) flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]entry)
}
