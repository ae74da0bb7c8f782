// Package memory provides a thread-safe in-memory blob store, the
// default backing for single-session editing and for tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/stackweave/stackweave/internal/core/store"
)

// BlobStore implements store.Blob with a mutex-guarded map.
// PRINCIPLES:
// - KISS: A map and a lock; no TTL, no eviction, the working set is a
//   handful of workflow blobs
// - DIP: Implements store.Blob
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates an empty in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Put stores a copy of value under key.
func (s *BlobStore) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	cp := make([]byte, len(value))
	copy(cp, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = cp
	return nil
}

// Get returns a copy of the value for key.
func (s *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.blobs[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Delete removes key. Absent keys are a no-op.
func (s *BlobStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// Keys lists stored keys with the given prefix, unordered.
func (s *BlobStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
