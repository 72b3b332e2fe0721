package pipeline

import (
	"fmt"

	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/viz"
)

// ExportText produces the requested textual artifacts from a graph.
// Image formats in the options are ignored; those are served by the
// render stage.
func ExportText(g *graph.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.textFormats() {
		exporter, err := viz.ForFormat(format)
		if err != nil {
			return nil, err
		}
		out, err := viz.ExportGraph(g, opts.Style, exporter)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		artifacts[format] = []byte(out)
	}
	return artifacts, nil
}

// DOTSource exports the graph as DOT for the render stage, regardless of
// whether dot is among the requested formats.
func DOTSource(g *graph.Graph, opts Options) ([]byte, error) {
	opts.SetExportDefaults()
	out, err := viz.ExportGraph(g, opts.Style, viz.NewDOTExporter())
	if err != nil {
		return nil, fmt.Errorf("export dot: %w", err)
	}
	return []byte(out), nil
}
