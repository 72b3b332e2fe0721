package graph

import "testing"

func TestNewNodeID(t *testing.T) {
	// Known djb2 values; the hash is part of the serialization contract,
	// so these must never change.
	tests := []struct {
		name     string
		typeName string
		want     uint64
	}{
		{"empty", "", 5381},
		{"single char", "A", 177638},
		{"simple type", "Product", 229437755893286},
		{"qualified type", "my_crate::domain::Product", 5475073930670543834},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewNodeID(tt.typeName); got.Value() != tt.want {
				t.Errorf("NewNodeID(%q) = %d, want %d", tt.typeName, got.Value(), tt.want)
			}
		})
	}
}

func TestNewNodeIDDeterminism(t *testing.T) {
	a := NewNodeID("ProductRepository")
	b := NewNodeID("ProductRepository")
	if a != b {
		t.Errorf("same name produced different IDs: %v vs %v", a, b)
	}

	if NewNodeID("Product") == NewNodeID("product") {
		t.Error("case-differing names produced the same ID")
	}
}

func TestNodeIDString(t *testing.T) {
	tests := []struct {
		name string
		id   NodeID
		want string
	}{
		{"raw value", NodeIDFromValue(42), "NodeId(42)"},
		{"zero", NodeIDFromValue(0), "NodeId(0)"},
		{"from name", NewNodeID("A"), "NodeId(177638)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeIDAsMapKey(t *testing.T) {
	m := map[NodeID]string{
		NewNodeID("Product"): "product",
	}
	if m[NewNodeID("Product")] != "product" {
		t.Error("recomputed ID did not find map entry")
	}
}
