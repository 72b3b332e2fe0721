package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/archscope/archscope/pkg/graph"
)

func TestJSONExportRoundTrip(t *testing.T) {
	vg := FromGraph(buildShopGraph(), DefaultStyle())

	out, err := NewJSONExporter().Export(vg)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc struct {
		Nodes []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Group string `json:"group"`
		} `json:"nodes"`
		Links []struct {
			Source string `json:"source"`
			Target string `json:"target"`
			Value  int    `json:"value"`
		} `json:"links"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := len(doc.Nodes); got != len(vg.Nodes) {
		t.Errorf("parsed %d nodes, want %d", got, len(vg.Nodes))
	}
	if got := len(doc.Links); got != len(vg.Edges) {
		t.Errorf("parsed %d links, want %d", got, len(vg.Edges))
	}

	for i, n := range vg.Nodes {
		if doc.Nodes[i].ID != n.ID || doc.Nodes[i].Name != n.Label || doc.Nodes[i].Group != n.Layer {
			t.Errorf("node %d = %+v, want id %q name %q group %q", i, doc.Nodes[i], n.ID, n.Label, n.Layer)
		}
	}
	for i, e := range vg.Edges {
		if doc.Links[i].Source != e.Source || doc.Links[i].Target != e.Target || doc.Links[i].Value != 1 {
			t.Errorf("link %d = %+v, want source %q target %q value 1", i, doc.Links[i], e.Source, e.Target)
		}
	}
}

func TestJSONExportEmptyGraph(t *testing.T) {
	out, err := NewJSONExporter().Export(FromGraph(graph.NewBuilder().Build(), DefaultStyle()))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Empty collections must serialize as arrays, not null.
	if !strings.Contains(out, `"nodes": []`) || !strings.Contains(out, `"links": []`) {
		t.Errorf("empty graph should export empty arrays, got:\n%s", out)
	}
}

func TestJSONExportIsIndented(t *testing.T) {
	out, err := NewJSONExporter().Export(FromGraph(buildShopGraph(), DefaultStyle()))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("Export() should pretty-print the document")
	}
}

func TestJSONExporterMetadata(t *testing.T) {
	e := NewJSONExporter()
	if got := e.FormatName(); got != "JSON (D3.js)" {
		t.Errorf("FormatName() = %q, want %q", got, "JSON (D3.js)")
	}
	if got := e.FileExtension(); got != "json" {
		t.Errorf("FileExtension() = %q, want %q", got, "json")
	}
}
