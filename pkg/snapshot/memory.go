package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process snapshot store for development and tests.
// Snapshots are held as serialized documents so the memory backend has the
// same fidelity as the file and mongo backends: anything that doesn't
// survive serialization doesn't survive storage.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string][]byte
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string][]byte)}
}

// Save stores a snapshot.
func (s *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.ID] = data
	return nil
}

// Get retrieves a snapshot by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	data, ok := s.snaps[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := make([]*Snapshot, 0, len(s.snaps))
	for _, data := range s.snaps {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parse snapshot: %w", err)
		}
		snaps = append(snaps, &snap)
	}

	sortSnapshots(snaps)
	return snaps, nil
}

// Delete removes a snapshot.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snaps[id]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// sortSnapshots orders snapshots newest first, breaking timestamp ties by
// id so listings are deterministic.
func sortSnapshots(snaps []*Snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})
}

var _ Store = (*MemoryStore)(nil)
