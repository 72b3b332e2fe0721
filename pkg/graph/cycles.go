package graph

import (
	"cmp"
	"slices"
)

// FindCycles reports dependency cycles in the graph.
//
// Only Depends edges participate: the other relationships describe
// structure (Implements, Aggregates) or data flow and legitimately point
// back up the layer stack. Each cycle is returned as the node ids along
// it, with the starting id repeated at the end. Edges with dangling
// endpoints never form cycles.
//
// One cycle is reported per back edge, so cycles sharing a node may
// collapse into a single report. Results are deterministic for a given
// graph.
func FindCycles(g *Graph) [][]NodeID {
	const (
		white = iota
		gray
		black
	)

	adj := make(map[NodeID][]NodeID)
	for _, e := range g.edges {
		if e.Relationship != RelationshipDepends {
			continue
		}
		if _, ok := g.nodes[e.Source]; !ok {
			continue
		}
		if _, ok := g.nodes[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	color := make(map[NodeID]int)
	var stack []NodeID
	var cycles [][]NodeID

	var dfs func(id NodeID)
	dfs = func(id NodeID) {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range adj[id] {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				// Back edge: the cycle is the stack from next onward.
				start := slices.Index(stack, next)
				cycles = append(cycles, append(slices.Clone(stack[start:]), next))
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	starts := g.Nodes()
	slices.SortFunc(starts, func(a, b Node) int {
		return cmp.Compare(a.ID.Value(), b.ID.Value())
	})
	for _, n := range starts {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return cycles
}
