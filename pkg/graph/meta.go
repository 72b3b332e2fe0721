package graph

import (
	"maps"
	"time"
)

// DefaultDescription is the graph description used when none is set.
const DefaultDescription = "Hexagonal Architecture Graph"

// Meta carries information about a graph as a whole: when it was built,
// a version counter, a human-readable description, and free-form attributes.
// Like the graph itself, Meta is immutable once the graph is built.
type Meta struct {
	Description string   // Human-readable summary of what the graph describes
	Version     uint64   // Caller-managed version counter, starts at 1
	CreatedAt   int64    // Unix seconds at build time
	Attributes  Metadata // Additional custom metadata
}

// NewMeta creates metadata with the given description, version 1, and the
// current timestamp.
func NewMeta(description string) Meta {
	return Meta{
		Description: description,
		Version:     1,
		CreatedAt:   time.Now().Unix(),
		Attributes:  Metadata{},
	}
}

// Attribute returns the value for a custom attribute key and whether it is set.
func (m Meta) Attribute(key string) (string, bool) {
	v, ok := m.Attributes[key]
	return v, ok
}

// clone returns a deep copy so a built graph never shares attribute storage
// with the builder that produced it.
func (m Meta) clone() Meta {
	out := m
	out.Attributes = make(Metadata, len(m.Attributes))
	maps.Copy(out.Attributes, m.Attributes)
	return out
}
