package viz

import (
	"bytes"
	"fmt"
	"strings"
)

// MermaidExporter renders visual graphs as Mermaid flow charts.
type MermaidExporter struct {
	// Direction sets the flow direction (TD, LR, BT, RL).
	Direction string
}

// NewMermaidExporter returns a Mermaid exporter with top-down flow.
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{Direction: "TD"}
}

// Export renders vg as a Mermaid graph. Node identifiers are rewritten
// into Mermaid's identifier grammar via [sanitizeMermaidID]; labels are
// quoted and may carry arbitrary text.
func (e *MermaidExporter) Export(vg *VisualGraph) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %s\n", e.Direction)

	for _, n := range vg.Nodes {
		label := n.Label + "\n(" + n.Role + ")"
		fmt.Fprintf(&buf, "  %s[%q]\n", sanitizeMermaidID(n.ID), label)
	}

	buf.WriteString("\n")
	for _, edge := range vg.Edges {
		fmt.Fprintf(&buf, "  %s -->|%s| %s\n",
			sanitizeMermaidID(edge.Source), edge.Relationship, sanitizeMermaidID(edge.Target))
	}

	return buf.String(), nil
}

// FormatName returns the human-readable format name.
func (e *MermaidExporter) FormatName() string { return "Mermaid" }

// FileExtension returns "mmd".
func (e *MermaidExporter) FileExtension() string { return "mmd" }

// sanitizeMermaidID rewrites an arbitrary identifier into Mermaid's
// identifier grammar. The NodeId wrapper is stripped down to its numeric
// value, then every rune outside [A-Za-z0-9_] becomes an underscore. The
// substitution is stable and the output contains only legal runes, so
// sanitizing a second time changes nothing.
func sanitizeMermaidID(id string) string {
	if rest, ok := strings.CutPrefix(id, "NodeId("); ok {
		if num, ok := strings.CutSuffix(rest, ")"); ok {
			id = num
		}
	}

	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
