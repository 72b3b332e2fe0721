package viz

import (
	"bytes"
	"fmt"
)

// DOTExporter renders visual graphs in Graphviz DOT syntax.
type DOTExporter struct {
	// Rankdir sets the layout direction (TB, LR, BT, RL).
	Rankdir string
}

// NewDOTExporter returns a DOT exporter with top-to-bottom layout.
func NewDOTExporter() *DOTExporter {
	return &DOTExporter{Rankdir: "TB"}
}

// Export renders vg as a DOT digraph. Every identifier and label is quoted,
// so arbitrary type names need no escaping beyond what %q provides.
func (e *DOTExporter) Export(vg *VisualGraph) (string, error) {
	shape := vg.Style.Shape
	if shape == "" {
		shape = "box"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph hex_architecture {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", e.Rankdir)
	fmt.Fprintf(&buf, "  node [shape=%s, style=rounded];\n", shape)
	buf.WriteString("\n")

	for _, n := range vg.Nodes {
		label := n.Label + "\n(" + n.Role + ")"
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%s, style=filled];\n", n.ID, label, n.Color)
	}

	buf.WriteString("\n")
	for _, edge := range vg.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", edge.Source, edge.Target, edge.Relationship)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// FormatName returns the human-readable format name.
func (e *DOTExporter) FormatName() string { return "DOT (GraphViz)" }

// FileExtension returns "dot".
func (e *DOTExporter) FileExtension() string { return "dot" }
