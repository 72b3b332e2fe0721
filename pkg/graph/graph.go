package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is an immutable directed graph of architecture components.
//
// A Graph is only obtained from [Builder.Build] or from deserialization.
// Once built it never changes, so a single *Graph handle can be shared
// across goroutines and read concurrently without synchronization.
// Accessors hand out copies of the edge sequence and fresh node slices;
// node Metadata maps are shared read-only views and must not be modified.
//
// The zero value is not usable - use [NewBuilder] to construct graphs.
type Graph struct {
	meta  Meta
	nodes map[NodeID]Node
	edges []Edge
}

// Meta returns the graph-level metadata.
func (g *Graph) Meta() Meta { return g.meta.clone() }

// NodeCount returns the number of nodes in the graph.
// Duplicate insertions collapse by ID, so this reflects unique IDs, not
// insertion count.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, dangling ones included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// LayerCount returns the number of distinct layers present across all nodes.
func (g *Graph) LayerCount() int {
	seen := make(map[Layer]struct{})
	for _, n := range g.nodes {
		seen[n.Layer] = struct{}{}
	}
	return len(seen)
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool { return len(g.nodes) == 0 }

// Node returns the node with the given ID and true, or the zero node and
// false if no such node exists.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in the graph.
// The order is not guaranteed. Each call allocates a fresh slice, so the
// result can be iterated, sorted, or filtered freely.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
// Duplicate edges are preserved; targets are not guaranteed to resolve.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodesByLayer returns all nodes classified under the given layer.
// The order is not guaranteed. A layer with no nodes yields an empty slice.
func (g *Graph) NodesByLayer(layer Layer) []Node {
	var nodes []Node
	for _, n := range g.nodes {
		if n.Layer == layer {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// NodesByRole returns all nodes with the given role.
// The order is not guaranteed. A role with no nodes yields an empty slice.
func (g *Graph) NodesByRole(role Role) []Node {
	var nodes []Node
	for _, n := range g.nodes {
		if n.Role == role {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// EdgesFrom returns the edges whose source is the given ID, in insertion
// order.
func (g *Graph) EdgesFrom(source NodeID) []Edge {
	var edges []Edge
	for _, e := range g.edges {
		if e.Source == source {
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgesTo returns the edges whose target is the given ID, in insertion
// order.
func (g *Graph) EdgesTo(target NodeID) []Edge {
	var edges []Edge
	for _, e := range g.edges {
		if e.Target == target {
			edges = append(edges, e)
		}
	}
	return edges
}

// Summary renders a deterministic human-readable overview: the description,
// node and edge counts, and per-layer node counts in canonical layer order.
// Layers with no nodes are omitted.
func (g *Graph) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", g.meta.Description)
	fmt.Fprintf(&b, "  Nodes: %d\n", g.NodeCount())
	fmt.Fprintf(&b, "  Edges: %d\n", g.EdgeCount())

	b.WriteString("\nBy Layer:\n")
	for _, layer := range Layers() {
		if count := len(g.NodesByLayer(layer)); count > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", layer, count)
		}
	}
	return b.String()
}
