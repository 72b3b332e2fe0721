package graph

import "maps"

// Node represents one component in the architecture graph.
//
// Identity is the ID field alone: two nodes with equal IDs are the same
// node, and inserting both into a builder keeps only the later one. All
// other fields are descriptive.
//
// The zero value is not usable - construct nodes with [NewNode] so the ID
// is derived from the type name and Metadata is initialized.
type Node struct {
	ID         NodeID   // Derived from TypeName via NewNodeID
	Layer      Layer    // Architectural tier
	Role       Role     // Classification within the layer
	TypeName   string   // Fully qualified type name (also the display label)
	ModulePath string   // Declaring module or package path
	Purpose    string   // Optional one-line description
	Metadata   Metadata // Arbitrary key-value metadata (never nil after NewNode)
}

// Metadata stores arbitrary string key-value pairs attached to a node.
// Ordering is irrelevant; maps are compared by content.
type Metadata map[string]string

// NewNode builds a node for the given type name, deriving its ID.
func NewNode(layer Layer, role Role, typeName, modulePath string) Node {
	return Node{
		ID:         NewNodeID(typeName),
		Layer:      layer,
		Role:       role,
		TypeName:   typeName,
		ModulePath: modulePath,
		Metadata:   Metadata{},
	}
}

// WithPurpose returns a copy of the node with its purpose set.
func (n Node) WithPurpose(purpose string) Node {
	n.Purpose = purpose
	return n
}

// WithMetadata returns a copy of the node with one metadata entry added.
// The original node's metadata map is not modified.
func (n Node) WithMetadata(key, value string) Node {
	m := make(Metadata, len(n.Metadata)+1)
	maps.Copy(m, n.Metadata)
	m[key] = value
	n.Metadata = m
	return n
}
