package cache

import (
	"context"
	"strings"
	"sync"
)

// MapDurable is a ports.DurableCache kept entirely in process memory. It is
// the fallback when no Redis address is configured (single-instance
// deployments, local development) and the backend the cache tests run
// against. It loses the cross-restart property of the Redis adapter but
// honors the same contract.
type MapDurable struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMapDurable() *MapDurable {
	return &MapDurable{items: make(map[string][]byte)}
}

func (m *MapDurable) Read(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MapDurable) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MapDurable) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *MapDurable) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
