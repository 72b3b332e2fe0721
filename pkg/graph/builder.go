package graph

import "maps"

// Builder is a mutable accumulator for assembling a [Graph].
//
// The builder records nodes and edges in the order they arrive and defers
// all collapsing to [Builder.Build]: adding two nodes with the same ID is
// allowed (the later one wins), and edges may reference IDs that were never
// added as nodes. Build performs no validation pass.
//
// A Builder is a short-lived, single-writer value. It is not safe for
// concurrent use; build the graph first, then share the result.
type Builder struct {
	description string
	version     uint64
	attributes  Metadata
	nodes       []Node
	edges       []Edge
}

// NewBuilder creates an empty builder with the default description and
// version 1.
func NewBuilder() *Builder {
	return &Builder{
		description: DefaultDescription,
		version:     1,
		attributes:  Metadata{},
	}
}

// WithDescription sets the graph description.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithVersion sets the graph version counter.
func (b *Builder) WithVersion(version uint64) *Builder {
	b.version = version
	return b
}

// WithAttribute adds one graph-level metadata attribute.
func (b *Builder) WithAttribute(key, value string) *Builder {
	b.attributes[key] = value
	return b
}

// AddNode records a node. If another node with the same ID is present at
// build time, the one added last wins; this makes duplicate registration of
// the same component idempotent rather than an error.
func (b *Builder) AddNode(n Node) *Builder {
	b.nodes = append(b.nodes, n)
	return b
}

// AddNodes records multiple nodes in order.
func (b *Builder) AddNodes(nodes ...Node) *Builder {
	b.nodes = append(b.nodes, nodes...)
	return b
}

// AddEdge records an edge. Edges are always appended: duplicates are kept,
// and neither endpoint needs to exist as a node now or ever.
func (b *Builder) AddEdge(e Edge) *Builder {
	b.edges = append(b.edges, e)
	return b
}

// AddEdges records multiple edges in order.
func (b *Builder) AddEdges(edges ...Edge) *Builder {
	b.edges = append(b.edges, edges...)
	return b
}

// Build assembles the immutable graph.
//
// Nodes collapse into a map keyed by ID in insertion order, so the last
// node added under an ID is the one kept. The edge sequence is copied
// as-is. No validation happens here: dangling edge targets and duplicate
// edges survive into the graph.
//
// The builder can be reused after Build; the returned graph holds no
// references to the builder's storage.
func (b *Builder) Build() *Graph {
	meta := NewMeta(b.description)
	meta.Version = b.version
	maps.Copy(meta.Attributes, b.attributes)

	nodes := make(map[NodeID]Node, len(b.nodes))
	for _, n := range b.nodes {
		if n.Metadata == nil {
			n.Metadata = Metadata{}
		} else {
			m := make(Metadata, len(n.Metadata))
			maps.Copy(m, n.Metadata)
			n.Metadata = m
		}
		nodes[n.ID] = n
	}

	edges := make([]Edge, len(b.edges))
	copy(edges, b.edges)

	return &Graph{
		meta:  meta,
		nodes: nodes,
		edges: edges,
	}
}
