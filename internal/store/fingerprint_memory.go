package store

import (
	"context"
	"sync"
)

// memoryFingerprintStore is the in-memory fingerprint store used in tests
// and when persistence across restarts is not wanted.
type memoryFingerprintStore struct {
	mu           sync.RWMutex
	fingerprints map[string]string
}

// NewMemoryFingerprintStore constructs an empty in-memory store.
func NewMemoryFingerprintStore() *memoryFingerprintStore {
	return &memoryFingerprintStore{fingerprints: make(map[string]string)}
}

// Get implements service.FingerprintStore.
func (s *memoryFingerprintStore) Get(_ context.Context, ownerID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprints[ownerID], nil
}

// Put implements service.FingerprintStore.
func (s *memoryFingerprintStore) Put(_ context.Context, ownerID string, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprints[ownerID] = fingerprint
	return nil
}
