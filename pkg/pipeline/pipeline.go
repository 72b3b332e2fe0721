// Package pipeline provides the artifact export pipeline for ArchScope.
//
// This package implements the complete export → render pipeline that can be
// used by CLI and server components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Export: Produce textual artifacts (DOT, Mermaid, D3 JSON) from a graph
//  2. Render: Rasterize the DOT source into images (SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages key their caches by content hash, so repeated runs over an
// unchanged graph serve artifacts without recomputing them.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"dot", "svg"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Textual exports only
//	texts, err := runner.Export(ctx, g, opts)
//
//	// Render images from existing DOT source
//	images, err := runner.Render(ctx, dot, opts)
package pipeline

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/viz"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the default raster scale factor for PNG output.
const DefaultScale = 1.0

// Format constants for output formats. The textual formats reuse the
// exporter identifiers from pkg/viz.
const (
	FormatDOT     = viz.FormatDOT
	FormatMermaid = viz.FormatMermaid
	FormatJSON    = viz.FormatJSON
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:     true,
	FormatMermaid: true,
	FormatJSON:    true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
}

// RenderFormats is the subset of formats produced by rasterizing DOT source.
var RenderFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the export pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Export options
	Formats []string  `json:"formats,omitempty"`
	Style   viz.Style `json:"-"`

	// Render options
	Scale float64 `json:"scale,omitempty"`

	// Refresh bypasses cached artifacts and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the graph the artifacts were produced from.
	Graph *graph.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Artifacts contains produced outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ExportTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExportHit bool // Whether all textual artifacts came from cache
	RenderHit bool // Whether all image artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, mermaid, json, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ArtifactExtension returns the file extension (without the dot) for an
// artifact of the given format. Text formats take their exporter's
// extension, so mermaid artifacts get "mmd"; image formats use the format
// name itself.
func ArtifactExtension(format string) string {
	if exp, err := viz.ForFormat(format); err == nil {
		return exp.FileExtension()
	}
	return format
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the requested formats and applies defaults
// for the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// SetExportDefaults sets default values for the export stage.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	def := viz.DefaultStyle()
	if o.Style.Colors == nil {
		o.Style.Colors = def.Colors
	}
	if o.Style.Shape == "" {
		o.Style.Shape = def.Shape
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for the export stage.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return ValidateFormats(o.Formats)
}

// SetRenderDefaults sets default values for image rendering.
func (o *Options) SetRenderDefaults() {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for image rendering.
func (o *Options) ValidateForRender() error {
	o.SetExportDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NeedsRender returns true if any requested format requires rasterizing.
func (o *Options) NeedsRender() bool {
	return len(o.renderFormats()) > 0
}

// textFormats returns the requested formats served by textual exporters.
func (o *Options) textFormats() []string {
	var formats []string
	for _, f := range o.Formats {
		if !RenderFormats[f] {
			formats = append(formats, f)
		}
	}
	return formats
}

// renderFormats returns the requested formats served by the rasterizer.
func (o *Options) renderFormats() []string {
	var formats []string
	for _, f := range o.Formats {
		if RenderFormats[f] {
			formats = append(formats, f)
		}
	}
	return formats
}

// ExportKeyOpts returns cache key options for a textual export artifact.
func (o *Options) ExportKeyOpts(format string) cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		Format: format,
		Style:  styleFingerprint(o.Style),
	}
}

// RenderKeyOpts returns cache key options for a rendered image artifact.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format: format,
		Scale:  o.Scale,
	}
}

// styleFingerprint digests a style for cache keys. The default style maps
// to the empty string so keys stay stable when no styling is configured.
func styleFingerprint(style viz.Style) string {
	def := viz.DefaultStyle()
	if style.Shape == def.Shape && maps.Equal(style.Colors, def.Colors) {
		return ""
	}
	var b strings.Builder
	b.WriteString("shape=" + style.Shape)
	for _, layer := range slices.Sorted(maps.Keys(style.Colors)) {
		fmt.Fprintf(&b, ";%s=%s", layer, style.Colors[layer])
	}
	return cache.Hash([]byte(b.String()))
}
