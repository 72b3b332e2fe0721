// Package snapshot persists named graph snapshots.
//
// A snapshot freezes the architecture graph of a running application at a
// point in time so it can be inspected, exported, or compared later,
// independent of the process that produced it. Backends:
//   - memory: in-process storage for development/testing
//   - file: JSON files in a directory for CLI usage
//   - mongo: MongoDB collection for shared deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := snapshot.NewMemoryStore()
//
//	// CLI
//	store, err := snapshot.NewFileStore("")  // Uses ~/.config/archscope/snapshots/
//
//	// Shared
//	store, err := snapshot.NewMongoStore(ctx, snapshot.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Persist the current graph:
//
//	snap, err := snapshot.New("before-refactor", registry.Current())
//	if err != nil {
//	    return err
//	}
//	if err := store.Save(ctx, snap); err != nil {
//	    return err
//	}
//
// Later, restore it:
//
//	snap, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	g, err := snap.Restore()
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/archscope/archscope/pkg/graph"
)

// ErrNotFound is returned when a requested snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a stored graph with identity and provenance.
type Snapshot struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	Graph     graph.Record `json:"graph" bson:"graph"`
}

// Restore rebuilds the graph stored in the snapshot.
func (s *Snapshot) Restore() (*graph.Graph, error) {
	return graph.FromRecord(s.Graph)
}

// NodeCount returns the number of nodes in the stored graph without
// rebuilding it.
func (s *Snapshot) NodeCount() int {
	return len(s.Graph.Nodes)
}

// EdgeCount returns the number of edges in the stored graph without
// rebuilding it.
func (s *Snapshot) EdgeCount() int {
	return len(s.Graph.Edges)
}

// New creates a snapshot of a graph with a fresh id.
func New(name string, g *graph.Graph) (*Snapshot, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:        id.String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Graph:     graph.ToRecord(g),
	}, nil
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save stores a snapshot, replacing any snapshot with the same id.
	Save(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by id.
	// Returns ErrNotFound if the snapshot doesn't exist.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes a snapshot.
	// Returns ErrNotFound if the snapshot doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
