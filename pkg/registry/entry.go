package registry

import "github.com/archscope/archscope/pkg/graph"

// NodeInfo is the descriptor a component declares about itself: where it
// sits in the architecture and how to label it. The engine needs nothing
// beyond a stable type name, a layer, a role, and optionally a module path
// and purpose line; it has no opinion on how these are produced.
type NodeInfo struct {
	Layer      graph.Layer // Architectural tier
	Role       graph.Role  // Classification within the layer
	TypeName   string      // Fully qualified type name, the node identity
	ModulePath string      // Declaring module or package path
	Purpose    string      // Optional one-line description
}

// ComponentEntry pairs two zero-argument producers bound to one component
// type: one for its descriptor, one for the IDs it depends on.
//
// Storing producers instead of materialized data means no component
// instance has to exist at registration time; the functions run only when
// a graph is built. Dependencies may be nil for components that declare
// none.
type ComponentEntry struct {
	Info         func() NodeInfo
	Dependencies func() []graph.NodeID
}

// Registrable is the minimal contract for participating in registration:
// any type exposing its descriptor and dependency list can contribute to
// the graph via [RegisterComponent].
type Registrable interface {
	NodeInfo() NodeInfo
	Dependencies() []graph.NodeID
}
