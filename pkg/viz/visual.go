package viz

import (
	"cmp"
	"slices"

	"github.com/archscope/archscope/pkg/graph"
)

// VisualNode is a display-ready node with resolved styling. All fields are
// plain strings so exporters need no knowledge of graph types.
type VisualNode struct {
	ID    string
	Label string
	Layer string
	Role  string
	Color string
	Shape string
}

// VisualEdge is a display-ready edge with a stringified relationship.
type VisualEdge struct {
	Source       string
	Target       string
	Relationship string
}

// VisualGraph is the format-independent input every [Exporter] consumes.
type VisualGraph struct {
	Nodes []VisualNode
	Edges []VisualEdge
	Style Style
}

// FromGraph projects a graph into its visual form using the given style.
// The label is the node's type name and the color comes from
// [Style.ColorForLayer]. Nodes are ordered by id so repeated exports of
// the same graph produce identical bytes; edges keep insertion order.
func FromGraph(g *graph.Graph, style Style) *VisualGraph {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		return cmp.Compare(a.ID.Value(), b.ID.Value())
	})

	vg := &VisualGraph{
		Nodes: make([]VisualNode, 0, len(nodes)),
		Edges: make([]VisualEdge, 0, g.EdgeCount()),
		Style: style,
	}

	for _, n := range nodes {
		vg.Nodes = append(vg.Nodes, VisualNode{
			ID:    n.ID.String(),
			Label: n.TypeName,
			Layer: n.Layer.String(),
			Role:  n.Role.String(),
			Color: style.ColorForLayer(n.Layer),
			Shape: style.Shape,
		})
	}

	for _, e := range g.Edges() {
		vg.Edges = append(vg.Edges, VisualEdge{
			Source:       e.Source.String(),
			Target:       e.Target.String(),
			Relationship: e.Relationship.String(),
		})
	}

	return vg
}
