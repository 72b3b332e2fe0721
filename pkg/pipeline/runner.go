package pipeline

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete export → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Compute graph hash for cache keys and API responses
	if graphData, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("prepared graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount)

	// Stage 1: Textual exports
	if len(opts.textFormats()) > 0 {
		exportStart := time.Now()
		observability.Pipeline().OnExportStart(ctx, opts.textFormats(), result.Stats.NodeCount)
		texts, exportHit, err := r.ExportWithCacheInfo(ctx, g, opts)
		observability.Pipeline().OnExportComplete(ctx, opts.textFormats(), time.Since(exportStart), err)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		maps.Copy(result.Artifacts, texts)
		result.Stats.ExportTime = time.Since(exportStart)
		result.CacheInfo.ExportHit = exportHit

		r.Logger.Info("exported text artifacts",
			"formats", opts.textFormats(),
			"duration", result.Stats.ExportTime)
	}

	// Stage 2: Image rendering
	if opts.NeedsRender() {
		dot := result.Artifacts[FormatDOT]
		if dot == nil {
			src, err := DOTSource(g, opts)
			if err != nil {
				return nil, fmt.Errorf("render: %w", err)
			}
			dot = src
		}

		renderStart := time.Now()
		observability.Pipeline().OnRenderStart(ctx, opts.renderFormats())
		images, renderHit, err := r.RenderWithCacheInfo(ctx, dot, opts)
		observability.Pipeline().OnRenderComplete(ctx, opts.renderFormats(), time.Since(renderStart), err)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		maps.Copy(result.Artifacts, images)
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered image artifacts",
			"formats", opts.renderFormats(),
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// ExportWithCacheInfo produces textual artifacts with caching and returns
// cache hit info.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	formats := opts.textFormats()
	if len(formats) == 0 {
		return map[string][]byte{}, false, nil
	}

	// Cache keys derive from the graph content hash
	graphData, _ := graph.MarshalGraph(g)
	graphHash := cache.Hash(graphData)

	// Try to get all formats from cache (unless refresh requested)
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if !opts.Refresh {
		for _, format := range formats {
			key := r.Keyer.ExportKey(graphHash, opts.ExportKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(formats) {
		observability.Cache().OnCacheHit(ctx, "export")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "export")

	// Export all formats
	exported, err := ExportText(g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range exported {
		key := r.Keyer.ExportKey(graphHash, opts.ExportKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLExport); err == nil {
			observability.Cache().OnCacheSet(ctx, "export", len(data))
		}
	}

	return exported, false, nil // Cache miss
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards the cache hit info.
func (r *Runner) Export(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// RenderWithCacheInfo rasterizes DOT source with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot []byte, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	formats := opts.renderFormats()
	if len(formats) == 0 {
		return map[string][]byte{}, false, nil
	}

	// Cache keys derive from the DOT source hash; the source embeds both
	// graph content and styling
	dotHash := cache.Hash(dot)

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if !opts.Refresh {
		for _, format := range formats {
			key := r.Keyer.RenderKey(dotHash, opts.RenderKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(formats) {
		observability.Cache().OnCacheHit(ctx, "render")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	// Render all formats
	rendered, err := RenderImages(ctx, dot, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.RenderKey(dotHash, opts.RenderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, dot []byte, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, dot, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
