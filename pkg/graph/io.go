package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// =============================================================================
// Record Types - Canonical Serialization Format
// =============================================================================

// Record is the canonical serialization format for architecture graphs.
// Used for graph files, API responses, caching, and snapshot storage.
//
// Node IDs serialize as decimal strings: the raw values span the full
// uint64 range, which JSON consumers with 53-bit integers would corrupt.
type Record struct {
	Meta  MetaRecord   `json:"meta" bson:"meta"`
	Nodes []NodeRecord `json:"nodes" bson:"nodes"`
	Edges []EdgeRecord `json:"edges" bson:"edges"`
}

// MetaRecord is the serialized form of [Meta].
type MetaRecord struct {
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Version     uint64            `json:"version" bson:"version"`
	CreatedAt   int64             `json:"created_at" bson:"created_at"`
	Attributes  map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
}

// NodeRecord is the serialized form of [Node].
type NodeRecord struct {
	ID         string            `json:"id" bson:"id"`
	Layer      string            `json:"layer" bson:"layer"`
	Role       string            `json:"role" bson:"role"`
	TypeName   string            `json:"type_name" bson:"type_name"`
	ModulePath string            `json:"module_path,omitempty" bson:"module_path,omitempty"`
	Purpose    string            `json:"purpose,omitempty" bson:"purpose,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// EdgeRecord is the serialized form of [Edge].
type EdgeRecord struct {
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	Relationship string `json:"relationship" bson:"relationship"`
}

// =============================================================================
// Graph ↔ Record Conversion
// =============================================================================

// ToRecord converts a graph to its serialization format.
// Nodes are sorted by ID for deterministic output; the edge sequence keeps
// its insertion order.
func ToRecord(g *Graph) Record {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b Node) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	meta := g.Meta()
	out := Record{
		Meta: MetaRecord{
			Description: meta.Description,
			Version:     meta.Version,
			CreatedAt:   meta.CreatedAt,
			Attributes:  meta.Attributes,
		},
		Nodes: make([]NodeRecord, len(nodes)),
		Edges: make([]EdgeRecord, len(g.edges)),
	}

	for i, n := range nodes {
		out.Nodes[i] = NodeRecord{
			ID:         formatID(n.ID),
			Layer:      string(n.Layer),
			Role:       string(n.Role),
			TypeName:   n.TypeName,
			ModulePath: n.ModulePath,
			Purpose:    n.Purpose,
			Metadata:   n.Metadata,
		}
	}

	for i, e := range g.edges {
		out.Edges[i] = EdgeRecord{
			Source:       formatID(e.Source),
			Target:       formatID(e.Target),
			Relationship: string(e.Relationship),
		}
	}

	return out
}

// FromRecord reconstructs a graph from its serialization format.
// IDs are preserved exactly as recorded, not recomputed from type names, so
// hand-edited or foreign-tool files round-trip unchanged. Returns an error
// only for IDs that do not parse as decimal uint64.
func FromRecord(rec Record) (*Graph, error) {
	b := NewBuilder().WithDescription(rec.Meta.Description)
	if rec.Meta.Version > 0 {
		b.WithVersion(rec.Meta.Version)
	}
	for k, v := range rec.Meta.Attributes {
		b.WithAttribute(k, v)
	}

	for _, nr := range rec.Nodes {
		id, err := parseID(nr.ID)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nr.TypeName, err)
		}
		b.AddNode(Node{
			ID:         id,
			Layer:      ParseLayer(nr.Layer),
			Role:       Role(nr.Role),
			TypeName:   nr.TypeName,
			ModulePath: nr.ModulePath,
			Purpose:    nr.Purpose,
			Metadata:   nr.Metadata,
		})
	}

	for _, er := range rec.Edges {
		source, err := parseID(er.Source)
		if err != nil {
			return nil, fmt.Errorf("edge source: %w", err)
		}
		target, err := parseID(er.Target)
		if err != nil {
			return nil, fmt.Errorf("edge target: %w", err)
		}
		b.AddEdge(Edge{
			Source:       source,
			Target:       target,
			Relationship: ParseRelationship(er.Relationship),
		})
	}

	g := b.Build()
	// Preserve the recorded build timestamp instead of the reconstruction time.
	if rec.Meta.CreatedAt != 0 {
		g.meta.CreatedAt = rec.Meta.CreatedAt
	}
	return g, nil
}

func formatID(id NodeID) string { return strconv.FormatUint(uint64(id), 10) }

func parseID(s string) (NodeID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid node id %q: %w", s, err)
	}
	return NodeID(v), nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to pretty-printed JSON bytes.
// Nodes are sorted by ID for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	out := ToRecord(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromRecord(rec)
}
