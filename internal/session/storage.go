package session

import (
	"context"
	"sync"
)

// BlobStore persists a single serialized session slot per key. Get returns
// nil data when the key is absent.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryBlobStore is an in-process BlobStore used in tests and when no
// durable backend is configured.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryBlobStore creates an empty in-memory store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{slots: make(map[string][]byte)}
}

// Get returns the stored value for key, or nil when absent.
func (m *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set overwrites the value for key.
func (m *MemoryBlobStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}

// Delete removes the value for key. Deleting an absent key is not an error.
func (m *MemoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

// Len reports how many slots currently hold a value.
func (m *MemoryBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}
