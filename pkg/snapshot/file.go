package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/archscope/archscope/pkg/errors"
)

// FileStore is a file-based snapshot store for CLI usage.
// Snapshots are stored as JSON files in a directory, one file per id.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based snapshot store.
// If baseDir is empty, defaults to ~/.config/archscope/snapshots/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "archscope", "snapshots")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) snapshotPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Save stores a snapshot. The snapshot id becomes the file name, so ids
// that fail [errors.ValidateSnapshotID] are rejected.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := errors.ValidateSnapshotID(snap.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := s.snapshotPath(snap.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by id.
func (s *FileStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if err := errors.ValidateSnapshotID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.snapshotPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots, newest first. Files that fail to parse are
// skipped rather than failing the listing.
func (s *FileStore) List(ctx context.Context) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	snaps := make([]*Snapshot, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		snaps = append(snaps, &snap)
	}

	sortSnapshots(snaps)
	return snaps, nil
}

// Delete removes a snapshot.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateSnapshotID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.snapshotPath(id)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Path returns the base directory for snapshot files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
