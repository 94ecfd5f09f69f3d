// Package storage persists component state snapshots between sessions.
//
// The runtime core never calls it; the preview server saves a session's
// reactive state on disconnect and restores it on resume. Backends are
// an in-memory map and S3.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no snapshot exists under a key.
var ErrNotFound = errors.New("storage: snapshot not found")

// SnapshotStore persists opaque state snapshots by key.
type SnapshotStore interface {
	// Save stores data under key, replacing any previous snapshot.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the snapshot under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the snapshot under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-process SnapshotStore.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

var _ SnapshotStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string][]byte),
	}
}

// Save implements SnapshotStore.
func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = buf
	return nil
}

// Load implements SnapshotStore.
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Delete implements SnapshotStore.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, key)
	return nil
}

// Len returns the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots)
}
