package viz

import "github.com/archscope/archscope/pkg/graph"

// Style controls how nodes are colored and shaped in exported diagrams.
type Style struct {
	// Colors maps each layer to a fill color understood by the target
	// format. Layers without an entry use the Unknown color.
	Colors map[graph.Layer]string

	// Shape is the node shape used by box-diagram formats.
	Shape string
}

// unknownColor flags nodes whose layer has no palette entry.
const unknownColor = "red"

// DefaultStyle returns the standard layer palette: cool colors for the
// inner layers, warm ones for the outer, red for anything unclassified.
func DefaultStyle() Style {
	return Style{
		Colors: map[graph.Layer]string{
			graph.LayerDomain:         "lightblue",
			graph.LayerPort:           "lightgreen",
			graph.LayerAdapter:        "lightyellow",
			graph.LayerApplication:    "lightcoral",
			graph.LayerInfrastructure: "lightgray",
			graph.LayerUnknown:        unknownColor,
		},
		Shape: "box",
	}
}

// ColorForLayer returns the fill color for a layer, falling back to the
// Unknown color when the palette has no entry for it.
func (s Style) ColorForLayer(layer graph.Layer) string {
	if c := s.Colors[layer]; c != "" {
		return c
	}
	if c := s.Colors[graph.LayerUnknown]; c != "" {
		return c
	}
	return unknownColor
}
