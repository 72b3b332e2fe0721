package pipeline

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/graph"
)

// buildShopGraph returns a small three-node fixture with two edges.
func buildShopGraph() *graph.Graph {
	product := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop::domain")
	port := graph.NewNode(graph.LayerPort, graph.RoleRepository, "ProductRepository", "shop::ports")
	adapter := graph.NewNode(graph.LayerAdapter, graph.RoleAdapter, "PostgresProductRepository", "shop::adapters")

	return graph.NewBuilder().
		AddNodes(product, port, adapter).
		AddEdge(graph.NewEdge(adapter.ID, port.ID, graph.RelationshipImplements)).
		AddEdge(graph.NewEdge(port.ID, product.ID, graph.RelationshipDepends)).
		Build()
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	if r.Cache == nil {
		t.Error("Cache should default to NullCache")
	}
	if r.Keyer == nil {
		t.Error("Keyer should default to DefaultKeyer")
	}
	if r.Logger == nil {
		t.Error("Logger should default to log.Default")
	}
}

func TestRunnerExecuteTextFormats(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	g := buildShopGraph()

	result, err := r.Execute(context.Background(), g, Options{
		Formats: []string{"dot", "mermaid", "json"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.Artifacts) != 3 {
		t.Errorf("len(Artifacts) = %d, want 3", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts["dot"]), "digraph") {
		t.Error("dot artifact should contain a digraph")
	}
	if !strings.Contains(string(result.Artifacts["mermaid"]), "graph TD") {
		t.Error("mermaid artifact should contain graph TD")
	}
	if len(result.GraphHash) != 64 {
		t.Errorf("GraphHash length = %d, want 64", len(result.GraphHash))
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %+v, want 3 nodes / 2 edges", result.Stats)
	}
	if result.CacheInfo.ExportHit {
		t.Error("First run should not hit the cache")
	}
}

func TestRunnerExportCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	g := buildShopGraph()
	opts := Options{Formats: []string{"dot", "json"}}

	first, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("First execute: %v", err)
	}
	if first.CacheInfo.ExportHit {
		t.Error("First run should miss the cache")
	}

	second, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Second execute: %v", err)
	}
	if !second.CacheInfo.ExportHit {
		t.Error("Second run should hit the cache")
	}
	if !reflect.DeepEqual(first.Artifacts, second.Artifacts) {
		t.Error("Cached artifacts should match the originals")
	}
}

func TestRunnerExportRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	g := buildShopGraph()

	if _, err := r.Execute(context.Background(), g, Options{Formats: []string{"dot"}}); err != nil {
		t.Fatalf("First execute: %v", err)
	}

	result, err := r.Execute(context.Background(), g, Options{
		Formats: []string{"dot"},
		Refresh: true,
	})
	if err != nil {
		t.Fatalf("Refresh execute: %v", err)
	}
	if result.CacheInfo.ExportHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerExportDistinctGraphsDistinctKeys(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	opts := Options{Formats: []string{"dot"}}

	if _, err := r.Execute(context.Background(), buildShopGraph(), opts); err != nil {
		t.Fatalf("First execute: %v", err)
	}

	other := graph.NewBuilder().
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop::domain")).
		Build()
	result, err := r.Execute(context.Background(), other, opts)
	if err != nil {
		t.Fatalf("Second execute: %v", err)
	}
	if result.CacheInfo.ExportHit {
		t.Error("A different graph should not reuse cached artifacts")
	}
	if !strings.Contains(string(result.Artifacts["dot"]), "Order") {
		t.Error("Artifact should reflect the second graph")
	}
}

func TestRunnerExportWithCacheInfoNoTextFormats(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	artifacts, hit, err := r.ExportWithCacheInfo(context.Background(), buildShopGraph(), Options{
		Formats: []string{"svg"},
	})
	if err != nil {
		t.Fatalf("ExportWithCacheInfo: %v", err)
	}
	if len(artifacts) != 0 || hit {
		t.Errorf("No text formats should yield empty artifacts, got %d (hit=%v)", len(artifacts), hit)
	}
}

func TestRunnerRenderServedFromCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())

	// Seed the cache under the key the runner will compute, then confirm
	// the rasterizer is never consulted.
	dot := []byte("digraph G { a -> b }")
	opts := Options{Formats: []string{"svg"}, Scale: DefaultScale}
	key := r.Keyer.RenderKey(cache.Hash(dot), opts.RenderKeyOpts(FormatSVG))
	if err := fc.Set(context.Background(), key, []byte("<svg/>"), cache.TTLRender); err != nil {
		t.Fatalf("Set: %v", err)
	}

	artifacts, hit, err := r.RenderWithCacheInfo(context.Background(), dot, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("Seeded render should hit the cache")
	}
	if string(artifacts["svg"]) != "<svg/>" {
		t.Errorf("svg artifact = %q, want seeded value", artifacts["svg"])
	}
}

func TestRunnerRenderWithCacheInfoNoImageFormats(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	artifacts, hit, err := r.RenderWithCacheInfo(context.Background(), []byte("digraph G {}"), Options{
		Formats: []string{"dot"},
	})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo: %v", err)
	}
	if len(artifacts) != 0 || hit {
		t.Errorf("No image formats should yield empty artifacts, got %d (hit=%v)", len(artifacts), hit)
	}
}

func TestExportTextProducesRequestedFormats(t *testing.T) {
	artifacts, err := ExportText(buildShopGraph(), Options{Formats: []string{"dot", "mermaid"}})
	if err != nil {
		t.Fatalf("ExportText: %v", err)
	}

	if len(artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(artifacts))
	}
	if !strings.Contains(string(artifacts["dot"]), "Product") {
		t.Error("dot artifact should mention graph nodes")
	}
}

func TestDOTSource(t *testing.T) {
	dot, err := DOTSource(buildShopGraph(), Options{Formats: []string{"svg"}})
	if err != nil {
		t.Fatalf("DOTSource: %v", err)
	}
	if !strings.HasPrefix(string(dot), "digraph") {
		t.Errorf("DOT source should start with digraph, got %q", string(dot[:20]))
	}
}

func TestRunnerClose(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
