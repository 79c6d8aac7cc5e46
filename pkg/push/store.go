package push

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/loom-ui/loom/pkg/state"
)

// SnapshotRecord is the persisted form of a detached session: the tree
// snapshot plus resume bookkeeping.
type SnapshotRecord struct {
	SessionID string         `msgpack:"sessionId"`
	Seq       uint64         `msgpack:"seq"`
	SavedAt   time.Time      `msgpack:"savedAt"`
	Tree      state.Snapshot `msgpack:"tree"`
}

// EncodeSnapshot serializes a snapshot record.
func EncodeSnapshot(rec *SnapshotRecord) ([]byte, error) {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("push: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a snapshot record.
func DecodeSnapshot(data []byte) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("push: decode snapshot: %w", err)
	}
	return &rec, nil
}

// SnapshotStore persists session snapshots between connections.
// Implementations must be safe for concurrent use.
type SnapshotStore interface {
	// Save persists a snapshot, overwriting any previous one for the
	// session. The snapshot expires at expiresAt.
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error

	// Load retrieves a snapshot. A missing or expired session is
	// (nil, nil), not an error.
	Load(ctx context.Context, sessionID string) ([]byte, error)

	// Delete removes a snapshot. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore is an in-memory SnapshotStore for single-process
// deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Save implements SnapshotStore.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.entries[sessionID] = memoryEntry{data: stored, expiresAt: expiresAt}
	return nil
}

// Load implements SnapshotStore.
func (s *MemoryStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

// Delete implements SnapshotStore.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Close implements SnapshotStore.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)
	return nil
}

// Len returns the number of stored snapshots.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
