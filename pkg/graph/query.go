package graph

import "strings"

// Query filters a graph's nodes through a chain of conditions.
//
// Conditions accumulate and combine with AND semantics. A query never
// fails: filters that match nothing produce empty results. The node order
// of [Query.Execute] is not guaranteed, matching [Graph.Nodes].
//
// Queries are cheap throwaway values:
//
//	repos := g.Query().Layer(LayerPort).Role(RoleRepository).Execute()
type Query struct {
	graph   *Graph
	filters []func(Node) bool
}

// Query starts a new filter chain over this graph.
func (g *Graph) Query() *Query {
	return &Query{graph: g}
}

// Layer keeps only nodes classified under the given layer.
func (q *Query) Layer(layer Layer) *Query {
	q.filters = append(q.filters, func(n Node) bool { return n.Layer == layer })
	return q
}

// Role keeps only nodes with the given role.
func (q *Query) Role(role Role) *Query {
	q.filters = append(q.filters, func(n Node) bool { return n.Role == role })
	return q
}

// TypeNameContains keeps only nodes whose type name contains the substring.
func (q *Query) TypeNameContains(substring string) *Query {
	q.filters = append(q.filters, func(n Node) bool { return strings.Contains(n.TypeName, substring) })
	return q
}

// ModulePathContains keeps only nodes whose module path contains the
// substring.
func (q *Query) ModulePathContains(substring string) *Query {
	q.filters = append(q.filters, func(n Node) bool { return strings.Contains(n.ModulePath, substring) })
	return q
}

// Execute returns all nodes matching every filter.
func (q *Query) Execute() []Node {
	var nodes []Node
	for _, n := range q.graph.nodes {
		if q.matches(n) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Count returns the number of matching nodes without collecting them.
func (q *Query) Count() int {
	count := 0
	for _, n := range q.graph.nodes {
		if q.matches(n) {
			count++
		}
	}
	return count
}

// First returns one matching node and true, or the zero node and false if
// nothing matches. Which node is first is unspecified when several match.
func (q *Query) First() (Node, bool) {
	for _, n := range q.graph.nodes {
		if q.matches(n) {
			return n, true
		}
	}
	return Node{}, false
}

func (q *Query) matches(n Node) bool {
	for _, filter := range q.filters {
		if !filter(n) {
			return false
		}
	}
	return true
}
