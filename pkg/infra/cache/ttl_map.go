package cache

import (
	"sync"
	"time"
)

// TTLEntry represents an entry in TTLMap
type TTLEntry struct {
	Value     interface{}
	ExpiresAt time.Time
}

// TTLMap is a thread-safe map with an expiry per entry. Entries are evicted
// lazily on read or by Purge.
type TTLMap struct {
	data map[string]*TTLEntry
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

// NewTTLMap creates a TTLMap whose Set uses ttl as the default lifetime.
func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		data: make(map[string]*TTLEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get retrieves a value from the TTLMap if it hasn't expired
func (m *TTLMap) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, exists := m.data[key]
	if !exists {
		m.mu.RUnlock()
		return nil, false
	}
	isExpired := !m.now().Before(entry.ExpiresAt)
	value := entry.Value
	m.mu.RUnlock()

	if isExpired {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && !m.now().Before(current.ExpiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	return value, true
}

// Set stores value with the map's default lifetime.
func (m *TTLMap) Set(key string, value interface{}) {
	m.SetWithTTL(key, value, m.ttl)
}

// SetWithTTL stores value for ttl. A non-positive ttl deletes the key.
func (m *TTLMap) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ttl <= 0 {
		delete(m.data, key)
		return
	}
	m.data[key] = &TTLEntry{
		Value:     value,
		ExpiresAt: m.now().Add(ttl),
	}
}

// Delete removes a key from the TTLMap
func (m *TTLMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Purge drops every expired entry and returns how many were removed.
func (m *TTLMap) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.data {
		if !now.Before(entry.ExpiresAt) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// Len counts entries, including expired ones not yet purged.
func (m *TTLMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all entries from the TTLMap
func (m *TTLMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*TTLEntry)
}
