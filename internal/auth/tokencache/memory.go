package tokencache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is an in-process Cache. State is lost on restart; the worst
// consequence is one extra introspection round trip per token. Expiry is
// checked at read time, so no background sweeper runs.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates a Memory cache whose entries live for ttl.
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements Cache. Expired entries are dropped on read.
func (m *Memory[T]) Get(_ context.Context, key string) (T, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false, nil
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, ok := m.entries[key]; ok && m.now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return zero, false, nil
	}
	return entry.value, true, nil
}

// Set implements Cache.
func (m *Memory[T]) Set(_ context.Context, key string, value T) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry[T]{value: value, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, including any not yet
// dropped by a read.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
