package session

import (
	"context"
	"sync"
	"time"

	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// MemoryStore is the in-process Store used when no redis is configured.
// Values are kept encoded so callers never share state.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]localEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]localEntry),
	}
}

func (m *MemoryStore) get(key string, out any) (bool, error) {
	m.mu.Lock()
	entry, found := m.entries[key]
	if found && entry.expires.Before(m.now()) {
		delete(m.entries, key)
		found = false
	}
	if found {
		entry.expires = m.now().Add(m.ttl)
		m.entries[key] = entry
	}
	m.mu.Unlock()
	if !found {
		return false, nil
	}
	return true, jsoncompat.Unmarshal(entry.data, out)
}

func (m *MemoryStore) set(key string, value any) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = localEntry{expires: m.now().Add(m.ttl), data: data}
	return nil
}

func (m *MemoryStore) LoadListing(ctx context.Context, sessionId string) (*query.Selection, bool, error) {
	state := query.NewSelection()
	found, err := m.get(listingKey("", sessionId), state)
	if !found || err != nil {
		return nil, false, err
	}
	state.Normalize()
	return state, true, nil
}

func (m *MemoryStore) SaveListing(ctx context.Context, sessionId string, state *query.Selection) error {
	if sessionId == "" {
		return ErrNoSession
	}
	return m.set(listingKey("", sessionId), state)
}

func (m *MemoryStore) LoadSelected(ctx context.Context, sessionId string) (types.ProductKey, bool, error) {
	var key types.ProductKey
	found, err := m.get(selectedKey("", sessionId), &key)
	if err != nil {
		return types.ProductKey{}, false, err
	}
	return key, found, nil
}

func (m *MemoryStore) SaveSelected(ctx context.Context, sessionId string, key types.ProductKey) error {
	if sessionId == "" {
		return ErrNoSession
	}
	return m.set(selectedKey("", sessionId), key)
}

func (m *MemoryStore) Clear(ctx context.Context, sessionId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, listingKey("", sessionId))
	delete(m.entries, selectedKey("", sessionId))
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for key, entry := range m.entries {
		if entry.expires.Before(now) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Close() error {
	return nil
}
