package viz

import (
	"encoding/json"
	"fmt"
)

// JSONExporter renders visual graphs as D3.js force-graph documents.
type JSONExporter struct{}

// NewJSONExporter returns a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// d3Graph is the document shape consumed by D3 force layouts.
type d3Graph struct {
	Nodes []d3Node `json:"nodes"`
	Links []d3Link `json:"links"`
}

type d3Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type d3Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// Export renders vg as a pretty-printed D3 document. Nodes carry their
// layer as the D3 group; every link has weight 1.
func (e *JSONExporter) Export(vg *VisualGraph) (string, error) {
	doc := d3Graph{
		Nodes: make([]d3Node, 0, len(vg.Nodes)),
		Links: make([]d3Link, 0, len(vg.Edges)),
	}

	for _, n := range vg.Nodes {
		doc.Nodes = append(doc.Nodes, d3Node{ID: n.ID, Name: n.Label, Group: n.Layer})
	}
	for _, edge := range vg.Edges {
		doc.Links = append(doc.Links, d3Link{Source: edge.Source, Target: edge.Target, Value: 1})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode D3 document: %w", err)
	}
	return string(out), nil
}

// FormatName returns the human-readable format name.
func (e *JSONExporter) FormatName() string { return "JSON (D3.js)" }

// FileExtension returns "json".
func (e *JSONExporter) FileExtension() string { return "json" }
