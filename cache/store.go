package cache

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("cache: key not found")

// Store is the backing storage of a Cache. MemoryStore is the default; a
// bounded or expiring implementation can be swapped in without touching the
// request logic.
//
//go:generate mockgen -destination=storemocks_test.go -package=cache_test github.com/owenbush/timeular2noko/cache Store
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Ensure MemoryStore implements the Store interface
var _ Store = &MemoryStore{}

// MemoryStore keeps every entry for the lifetime of the process. Concurrent
// writers to the same key race; the last one wins.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
