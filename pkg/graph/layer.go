package graph

// =============================================================================
// Layer - Architectural Tier Classification
// =============================================================================

// Layer classifies a component into an architectural tier.
//
// The set is closed: use the constants below. Values deserialized from
// outside sources should go through [ParseLayer], which maps anything
// unrecognized to [LayerUnknown] instead of failing.
type Layer string

// The architectural layers, from the inside out.
const (
	LayerDomain         Layer = "Domain"         // Pure business logic
	LayerPort           Layer = "Port"           // Interfaces the application depends on
	LayerAdapter        Layer = "Adapter"        // Concrete implementations of ports
	LayerApplication    Layer = "Application"    // Use-case orchestration
	LayerInfrastructure Layer = "Infrastructure" // Cross-cutting technical services
	LayerUnknown        Layer = "Unknown"        // Unclassified
)

// ValidLayers is the set of recognized layer values.
var ValidLayers = map[Layer]bool{
	LayerDomain:         true,
	LayerPort:           true,
	LayerAdapter:        true,
	LayerApplication:    true,
	LayerInfrastructure: true,
	LayerUnknown:        true,
}

// Layers lists all layers in canonical display order.
// Iteration over this slice gives deterministic per-layer output.
func Layers() []Layer {
	return []Layer{
		LayerDomain,
		LayerPort,
		LayerAdapter,
		LayerApplication,
		LayerInfrastructure,
		LayerUnknown,
	}
}

// ParseLayer maps a string onto a recognized Layer.
// Unrecognized input yields LayerUnknown; parsing never fails.
func ParseLayer(s string) Layer {
	if l := Layer(s); ValidLayers[l] {
		return l
	}
	return LayerUnknown
}

// String returns the layer's display name.
func (l Layer) String() string { return string(l) }
