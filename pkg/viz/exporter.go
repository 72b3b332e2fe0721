package viz

import (
	"fmt"
	"os"

	"github.com/archscope/archscope/pkg/graph"
)

// Exporter converts a [VisualGraph] into one textual output format.
//
// Implementations must be deterministic and total over identifier content:
// names that don't fit the target grammar are rewritten, never rejected.
// Export fails only when serialization itself fails.
type Exporter interface {
	// Export renders the visual graph in the target format.
	Export(vg *VisualGraph) (string, error)

	// FormatName returns the human-readable format name.
	FormatName() string

	// FileExtension returns the artifact extension without the dot.
	FileExtension() string
}

// Format constants for the built-in exporters.
const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatDOT:     true,
	FormatMermaid: true,
	FormatJSON:    true,
}

// ValidateFormat checks that a format identifier is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, mermaid, json)", format)
	}
	return nil
}

// ForFormat returns the exporter registered under the given identifier.
func ForFormat(format string) (Exporter, error) {
	switch format {
	case FormatDOT:
		return NewDOTExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// ExportGraph projects g through [FromGraph] and renders it with exporter.
// The only failure path is the exporter's own serialization.
func ExportGraph(g *graph.Graph, style Style, exporter Exporter) (string, error) {
	return exporter.Export(FromGraph(g, style))
}

// SaveVisualization exports g and writes the artifact to path.
func SaveVisualization(g *graph.Graph, style Style, exporter Exporter, path string) error {
	out, err := ExportGraph(g, style, exporter)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write %s artifact: %w", exporter.FormatName(), err)
	}
	return nil
}
