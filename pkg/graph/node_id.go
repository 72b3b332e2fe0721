package graph

import "fmt"

// NodeID uniquely identifies a node in the architecture graph.
//
// IDs are computed from a component's fully qualified type name with the
// djb2 hash, so the same name always produces the same ID, across processes
// and builds. Two components sharing a qualified name collide on purpose:
// the collision is the deduplication point that makes repeated registration
// of one component idempotent.
//
// NodeID is an ordered, comparable value type and can be used as a map key.
type NodeID uint64

// NewNodeID computes the ID for a fully qualified type name.
func NewNodeID(typeName string) NodeID {
	// djb2: h(i) = h(i-1)*33 + b(i), seeded with 5381, wrapping at 64 bits.
	var h uint64 = 5381
	for i := 0; i < len(typeName); i++ {
		h = h*33 + uint64(typeName[i])
	}
	return NodeID(h)
}

// NodeIDFromValue wraps a raw hash value in a NodeID.
// Used when reconstructing graphs from serialized form, where IDs must be
// preserved exactly rather than recomputed from names.
func NodeIDFromValue(v uint64) NodeID { return NodeID(v) }

// Value returns the raw hash value.
func (id NodeID) Value() uint64 { return uint64(id) }

// String renders the ID in its canonical display form, e.g. "NodeId(5381)".
func (id NodeID) String() string { return fmt.Sprintf("NodeId(%d)", uint64(id)) }
