package graph

// Edge represents a directed, typed connection between two nodes.
//
// Edges are pure references: the Target (or even the Source) may name an ID
// with no corresponding node in the graph. Dangling edges are tolerated by
// construction and by every query; traversals that resolve endpoints must
// check existence themselves.
type Edge struct {
	Source       NodeID       // Where the edge starts
	Target       NodeID       // Where the edge points (may be dangling)
	Relationship Relationship // Edge semantics, e.g. Depends or Implements
}

// NewEdge builds an edge between two node IDs.
func NewEdge(source, target NodeID, rel Relationship) Edge {
	return Edge{Source: source, Target: target, Relationship: rel}
}
