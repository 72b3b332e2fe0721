package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func buildIOFixture() *Graph {
	return NewBuilder().
		WithDescription("Shop Architecture").
		WithVersion(2).
		WithAttribute("source", "registry").
		AddNode(NewNode(LayerDomain, RoleEntity, "Product", "shop/domain").WithPurpose("catalog item")).
		AddNode(NewNode(LayerPort, RoleRepository, "ProductRepository", "shop/ports")).
		AddNode(NewNode(LayerAdapter, RoleAdapter, "PostgresProductRepository", "shop/adapters").
			WithMetadata("driver", "pgx")).
		AddEdge(NewEdge(NewNodeID("PostgresProductRepository"), NewNodeID("ProductRepository"), RelationshipDepends)).
		AddEdge(NewEdge(NewNodeID("PostgresProductRepository"), NewNodeID("ProductRepository"), RelationshipImplements)).
		Build()
}

func TestGraphRoundTrip(t *testing.T) {
	g := buildIOFixture()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	if got.NodeCount() != g.NodeCount() {
		t.Errorf("nodes = %d, want %d", got.NodeCount(), g.NodeCount())
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("edges = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}

	meta := got.Meta()
	if meta.Description != "Shop Architecture" {
		t.Errorf("description = %q, want Shop Architecture", meta.Description)
	}
	if meta.Version != 2 {
		t.Errorf("version = %d, want 2", meta.Version)
	}
	if v, _ := meta.Attribute("source"); v != "registry" {
		t.Errorf("attribute source = %q, want registry", v)
	}

	n, ok := got.Node(NewNodeID("Product"))
	if !ok {
		t.Fatal("Product node lost in round trip")
	}
	if n.Layer != LayerDomain || n.Role != RoleEntity || n.Purpose != "catalog item" {
		t.Errorf("Product round-tripped as %+v", n)
	}

	adapter, ok := got.Node(NewNodeID("PostgresProductRepository"))
	if !ok {
		t.Fatal("adapter node lost in round trip")
	}
	if adapter.Metadata["driver"] != "pgx" {
		t.Errorf("metadata driver = %q, want pgx", adapter.Metadata["driver"])
	}

	// Edge order and relationships survive.
	edges := got.Edges()
	if len(edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(edges))
	}
	if edges[0].Relationship != RelationshipDepends || edges[1].Relationship != RelationshipImplements {
		t.Errorf("edge order = [%v %v], want [Depends Implements]", edges[0].Relationship, edges[1].Relationship)
	}
}

func TestMarshalGraphDeterministic(t *testing.T) {
	g := buildIOFixture()

	a, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	b, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("MarshalGraph output differs between calls")
	}
}

func TestToRecordSortsNodes(t *testing.T) {
	g := buildIOFixture()
	rec := ToRecord(g)

	if len(rec.Nodes) != 3 {
		t.Fatalf("record has %d nodes, want 3", len(rec.Nodes))
	}
	for i := 1; i < len(rec.Nodes); i++ {
		prev, err := parseID(rec.Nodes[i-1].ID)
		if err != nil {
			t.Fatalf("parse %q: %v", rec.Nodes[i-1].ID, err)
		}
		curr, err := parseID(rec.Nodes[i].ID)
		if err != nil {
			t.Fatalf("parse %q: %v", rec.Nodes[i].ID, err)
		}
		if prev >= curr {
			t.Errorf("nodes not sorted: %d before %d", prev, curr)
		}
	}
}

func TestFromRecordPreservesForeignIDs(t *testing.T) {
	// IDs in a record are authoritative even when they do not match the
	// hash of the type name.
	rec := Record{
		Nodes: []NodeRecord{
			{ID: "12345", Layer: "Domain", Role: "Entity", TypeName: "Product"},
		},
	}

	g, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if _, ok := g.Node(NodeIDFromValue(12345)); !ok {
		t.Error("recorded ID was not preserved")
	}
	if _, ok := g.Node(NewNodeID("Product")); ok {
		t.Error("ID was recomputed from type name")
	}
}

func TestFromRecordLenientParsing(t *testing.T) {
	rec := Record{
		Nodes: []NodeRecord{
			{ID: "1", Layer: "NoSuchLayer", Role: "CustomRole", TypeName: "Widget"},
		},
		Edges: []EdgeRecord{
			{Source: "1", Target: "2", Relationship: "NoSuchRelationship"},
		},
	}

	g, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}

	n, _ := g.Node(NodeIDFromValue(1))
	if n.Layer != LayerUnknown {
		t.Errorf("unknown layer parsed as %v, want Unknown", n.Layer)
	}
	if n.Role != Role("CustomRole") {
		t.Errorf("open role parsed as %v, want CustomRole", n.Role)
	}
	if g.Edges()[0].Relationship != RelationshipUnknown {
		t.Errorf("unknown relationship parsed as %v, want Unknown", g.Edges()[0].Relationship)
	}
}

func TestFromRecordInvalidID(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{
			name: "bad node id",
			rec:  Record{Nodes: []NodeRecord{{ID: "not-a-number", TypeName: "X"}}},
		},
		{
			name: "bad edge source",
			rec:  Record{Edges: []EdgeRecord{{Source: "abc", Target: "1"}}},
		},
		{
			name: "bad edge target",
			rec:  Record{Edges: []EdgeRecord{{Source: "1", Target: ""}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRecord(tt.rec); err == nil {
				t.Error("FromRecord succeeded, want error")
			}
		})
	}
}

func TestWriteReadGraphFile(t *testing.T) {
	g := buildIOFixture()
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if got.NodeCount() != 3 || got.EdgeCount() != 2 {
		t.Errorf("read back %d nodes %d edges, want 3 and 2", got.NodeCount(), got.EdgeCount())
	}

	// The file is valid, pretty-printed JSON.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if !bytes.Contains(raw, []byte("\n  ")) {
		t.Error("file is not indented")
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadGraphFile on missing file succeeded, want error")
	}
}
