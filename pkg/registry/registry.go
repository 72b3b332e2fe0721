// Package registry collects component self-descriptions and assembles them
// into the process-wide architecture graph.
//
// Components contribute a [ComponentEntry] during startup, typically from an
// init function, so the full set of descriptors exists before any code asks
// for the graph. Registration is purely additive: there is no unregistration,
// and the collected set is an unordered bag as far as consumers are concerned.
//
// # Architecture
//
// The package follows a global-registry pattern:
//   - Entries accumulate in a package-level collection guarded by a mutex
//   - [BuildGraph] drains the collection into an immutable [graph.Graph]
//   - [Current] caches that graph in an atomic pointer for the process
//     lifetime; [Refresh] swaps in a rebuilt graph atomically
//
// This approach:
//   - Avoids import cycles (components import registry, never the reverse)
//   - Keeps graph consumers free of registration bookkeeping
//   - Makes repeated registration of one component harmless, since node
//     identity derives from the type name
//
// # Usage
//
// Register components at startup:
//
//	func init() {
//	    registry.Register(registry.ComponentEntry{
//	        Info: func() registry.NodeInfo {
//	            return registry.NodeInfo{
//	                Layer:      graph.LayerAdapter,
//	                Role:       graph.RoleAdapter,
//	                TypeName:   "PostgresProductRepository",
//	                ModulePath: "shop/adapters",
//	            }
//	        },
//	        Dependencies: func() []graph.NodeID {
//	            return []graph.NodeID{graph.NewNodeID("ProductRepository")}
//	        },
//	    })
//	}
//
// Read the assembled graph anywhere:
//
//	g := registry.Current()
//	fmt.Print(g.Summary())
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/archscope/archscope/pkg/graph"
)

var (
	mu      sync.RWMutex
	entries []ComponentEntry

	current  atomic.Pointer[graph.Graph]
	buildMu  sync.Mutex
	refreshN uint64
)

// Register adds one component entry to the process-wide collection.
// Safe for concurrent use, though in practice registration happens from
// init functions before the program starts doing work. Entries with a nil
// Info producer are ignored.
func Register(e ComponentEntry) {
	if e.Info == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, e)
}

// RegisterComponent adds a [Registrable] implementation to the collection.
// It is a convenience wrapper around [Register] for component types that
// carry their own descriptor methods.
func RegisterComponent(r Registrable) {
	Register(ComponentEntry{
		Info:         r.NodeInfo,
		Dependencies: r.Dependencies,
	})
}

// ComponentCount returns the number of registered entries without
// materializing a graph. O(1) over the collected set; duplicates of the
// same component count individually until a build collapses them by ID.
func ComponentCount() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(entries)
}

// BuildGraph drains the registration collection into a fresh graph.
//
// Every entry becomes a node whose ID derives from its type name, with
// empty extra metadata, plus one Depends edge per declared dependency.
// Duplicate registrations of one type name collapse to a single node (last
// one wins); duplicate dependency declarations yield duplicate edges, which
// the graph preserves. The result is deterministic for a fixed registration
// set, since entries and their dependencies are visited in registration
// order.
func BuildGraph() *graph.Graph {
	return buildVersioned(1)
}

// Current returns the shared architecture graph for the process, building
// it on first call. The returned handle is immutable and safe to use from
// any goroutine. Subsequent calls return the same graph until [Refresh]
// replaces it.
func Current() *graph.Graph {
	if g := current.Load(); g != nil {
		return g
	}

	buildMu.Lock()
	defer buildMu.Unlock()
	if g := current.Load(); g != nil {
		return g
	}

	g := BuildGraph()
	current.Store(g)
	return g
}

// Refresh rebuilds the graph from the current registration set and swaps it
// in atomically: concurrent readers observe either the previous complete
// graph or the new complete graph, never a partial one. The new graph's
// version counter increases by one per refresh. Returns the new graph.
func Refresh() *graph.Graph {
	buildMu.Lock()
	defer buildMu.Unlock()

	refreshN++
	g := buildVersioned(1 + refreshN)
	current.Store(g)
	return g
}

// Reset clears the registration collection and the cached graph.
// This is primarily useful for testing.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	mu.Lock()
	entries = nil
	mu.Unlock()
	current.Store(nil)
	refreshN = 0
}

// buildVersioned assembles a graph from a snapshot of the entries.
func buildVersioned(version uint64) *graph.Graph {
	mu.RLock()
	snapshot := make([]ComponentEntry, len(entries))
	copy(snapshot, entries)
	mu.RUnlock()

	b := graph.NewBuilder().WithVersion(version)
	for _, e := range snapshot {
		info := e.Info()
		node := graph.NewNode(info.Layer, info.Role, info.TypeName, info.ModulePath)
		if info.Purpose != "" {
			node = node.WithPurpose(info.Purpose)
		}
		b.AddNode(node)

		if e.Dependencies == nil {
			continue
		}
		for _, dep := range e.Dependencies() {
			b.AddEdge(graph.NewEdge(node.ID, dep, graph.RelationshipDepends))
		}
	}
	return b.Build()
}
