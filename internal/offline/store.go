package offline

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Entry is a stored response.
type Entry struct {
	Status int
	Header http.Header
	Body   []byte
}

// Store keeps responses per cache generation.
type Store interface {
	Get(ctx context.Context, cache, key string) (Entry, bool, error)
	Put(ctx context.Context, cache, key string, e Entry) error
	Caches(ctx context.Context) ([]string, error)
	DeleteCache(ctx context.Context, cache string) error
}

// MemoryStore is an in-process Store used when Redis is unavailable.  It
// stops accepting entries once it holds MaxEntries, and entries older than
// TTL read as misses.  A TTL of zero keeps entries until their cache is
// deleted.
type MemoryStore struct {
	MaxEntries int
	TTL        time.Duration
	Now        func() time.Time

	mu     sync.RWMutex
	caches map[string]map[string]memoryEntry
	size   int
}

type memoryEntry struct {
	Entry
	expires time.Time
}

// NewMemoryStore returns an empty store bounded by maxEntries and ttl.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		MaxEntries: maxEntries,
		TTL:        ttl,
		Now:        time.Now,
		caches:     make(map[string]map[string]memoryEntry),
	}
}

func (m *MemoryStore) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Get returns the live entry stored under key.
func (m *MemoryStore) Get(_ context.Context, cache, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.caches[cache][key]
	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return Entry{}, false, nil
	}
	return e.Entry, true, nil
}

// Put stores e under key.  New keys are dropped once the store is full;
// expired entries are reclaimed first.
func (m *MemoryStore) Put(_ context.Context, cache, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	c, ok := m.caches[cache]
	if !ok {
		c = make(map[string]memoryEntry)
		m.caches[cache] = c
	}
	if _, exists := c[key]; !exists {
		if m.MaxEntries > 0 && m.size >= m.MaxEntries {
			m.sweep(now)
		}
		if m.MaxEntries > 0 && m.size >= m.MaxEntries {
			return nil
		}
		m.size++
	}
	me := memoryEntry{Entry: e}
	if m.TTL > 0 {
		me.expires = now.Add(m.TTL)
	}
	c[key] = me
	return nil
}

// sweep drops expired entries.  m.mu must be held for writing.
func (m *MemoryStore) sweep(now time.Time) {
	for _, c := range m.caches {
		for key, e := range c {
			if !e.expires.IsZero() && !now.Before(e.expires) {
				delete(c, key)
				m.size--
			}
		}
	}
}

// Caches lists the cache generations that hold entries.
func (m *MemoryStore) Caches(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.caches))
	for name := range m.caches {
		out = append(out, name)
	}
	return out, nil
}

// DeleteCache drops a whole cache generation.
func (m *MemoryStore) DeleteCache(_ context.Context, cache string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.size -= len(m.caches[cache])
	delete(m.caches, cache)
	return nil
}
