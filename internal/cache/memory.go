package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a process-local ViewCache
type Memory struct {
	mu          sync.Mutex
	entries     map[string]entry
	generations map[string]uint64
	ttl         time.Duration
	now         func() time.Time
}

// NewMemory creates an in-memory cache. A ttl of zero keeps entries until
// they are invalidated.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries:     make(map[string]entry),
		generations: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (m *Memory) Get(_ context.Context, ownerID, view string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := viewKey(ownerID, view)
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.data, true
}

func (m *Memory) Set(_ context.Context, ownerID, view string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(viewKey(ownerID, view), data)
}

func (m *Memory) Generation(_ context.Context, ownerID, view string) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[viewKey(ownerID, view)], true
}

func (m *Memory) SetIfCurrent(_ context.Context, ownerID, view string, gen uint64, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := viewKey(ownerID, view)
	if m.generations[key] != gen {
		return
	}
	m.store(key, data)
}

func (m *Memory) Invalidate(_ context.Context, ownerID string, views ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, view := range views {
		key := viewKey(ownerID, view)
		delete(m.entries, key)
		m.generations[key]++
	}
}

// store must be called with mu held
func (m *Memory) store(key string, data []byte) {
	e := entry{data: data}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[key] = e
}

func (m *Memory) Close() error { return nil }

func viewKey(ownerID, view string) string {
	return ownerID + ":" + view
}
