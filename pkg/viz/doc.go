// Package viz renders architecture graphs as diagrams and documents.
//
// # Overview
//
// This package projects a [graph.Graph] into a display-oriented
// [VisualGraph] and exports it through pluggable format exporters.
// Three formats ship with the package:
//
//   - Graphviz DOT ([DOTExporter]) for box-and-arrow diagrams
//   - Mermaid ([MermaidExporter]) for markdown-embeddable flow charts
//   - D3.js JSON ([JSONExporter]) for force-directed web views
//
// # Usage
//
// Project a graph and export it in one call:
//
//	out, err := viz.ExportGraph(g, viz.DefaultStyle(), viz.NewDOTExporter())
//
// Or write the artifact straight to disk:
//
//	err := viz.SaveVisualization(g, viz.DefaultStyle(), viz.NewMermaidExporter(), "arch.mmd")
//
// # Determinism
//
// [FromGraph] orders nodes by id and keeps edges in insertion order, so
// exporting the same graph twice yields byte-identical output in every
// format. Exporters never fail on identifier content; names that don't fit
// a format's identifier grammar are rewritten deterministically instead.
// The only error path is serialization itself.
//
// # Rendering
//
// DOT output can be rendered in-process via [RenderSVG], with [RenderPDF]
// and [RenderPNG] as conversion wrappers:
//
//	dot, _ := viz.ExportGraph(g, viz.DefaultStyle(), viz.NewDOTExporter())
//	svg, err := viz.RenderSVG(ctx, dot)
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz]. PDF and PNG
// conversion requires librsvg (rsvg-convert).
package viz
