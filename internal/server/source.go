package server

import (
	"fmt"
	"sync/atomic"

	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/registry"
)

// GraphSource supplies the graph being served and supports reloads.
//
// The current handle is swapped with an atomic pointer, so request handlers
// always observe either the previous complete graph or the new complete
// graph, never a partial one.
type GraphSource struct {
	name    string
	load    func() (*graph.Graph, error)
	current atomic.Pointer[graph.Graph]
}

// NewGraphSource creates a source serving initial until Refresh replaces it.
func NewGraphSource(name string, initial *graph.Graph, load func() (*graph.Graph, error)) *GraphSource {
	s := &GraphSource{
		name: name,
		load: load,
	}
	s.current.Store(initial)
	return s
}

// FileSource returns a source that re-reads a graph file on every refresh.
func FileSource(path string) (*GraphSource, error) {
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return NewGraphSource(path, g, func() (*graph.Graph, error) {
		return graph.ReadGraphFile(path)
	}), nil
}

// RegistrySource returns a source backed by the process-wide component
// registry. Refreshing rebuilds from the current registration set and bumps
// the graph version.
func RegistrySource() *GraphSource {
	return NewGraphSource("registry", registry.Current(), func() (*graph.Graph, error) {
		return registry.Refresh(), nil
	})
}

// Name identifies the source for cache key scoping.
func (s *GraphSource) Name() string { return s.name }

// Graph returns the current graph handle.
func (s *GraphSource) Graph() *graph.Graph {
	return s.current.Load()
}

// Refresh reloads the graph and swaps it in atomically.
func (s *GraphSource) Refresh() (*graph.Graph, error) {
	g, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(g)
	return g, nil
}
