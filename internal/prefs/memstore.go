package prefs

import "sync"

// MemStore keeps preferences in memory only.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
	// FailSet, when non-nil, is returned by every Set.
	FailSet error
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.values[key] = value
	return nil
}

func (m *MemStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *MemStore) Path() string { return "" }

func (m *MemStore) Close() error { return nil }
