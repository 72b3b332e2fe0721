package server

import (
	"path/filepath"
	"testing"

	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/registry"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.json")
	if err := graph.WriteGraphFile(buildShopGraph(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	source, err := FileSource(path)
	if err != nil {
		t.Fatalf("FileSource: %v", err)
	}
	if source.Name() != path {
		t.Errorf("Name() = %q, want %q", source.Name(), path)
	}
	if source.Graph().NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", source.Graph().NodeCount())
	}

	// Rewrite the file and confirm a refresh picks up the new content.
	replacement := graph.NewBuilder().
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop::domain")).
		Build()
	if err := graph.WriteGraphFile(replacement, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	g, err := source.Refresh()
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("refreshed NodeCount = %d, want 1", g.NodeCount())
	}
	if source.Graph().NodeCount() != 1 {
		t.Error("Graph() should serve the refreshed handle")
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := FileSource(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("FileSource should fail for a missing file")
	}
}

func TestRegistrySource(t *testing.T) {
	registry.Reset()
	t.Cleanup(registry.Reset)

	registry.Register(registry.ComponentEntry{
		Info: func() registry.NodeInfo {
			return registry.NodeInfo{
				Layer:    graph.LayerDomain,
				Role:     graph.RoleEntity,
				TypeName: "Invoice",
			}
		},
	})

	source := RegistrySource()
	if source.Name() != "registry" {
		t.Errorf("Name() = %q, want registry", source.Name())
	}
	if source.Graph().NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", source.Graph().NodeCount())
	}
	baseVersion := source.Graph().Meta().Version

	registry.Register(registry.ComponentEntry{
		Info: func() registry.NodeInfo {
			return registry.NodeInfo{
				Layer:    graph.LayerPort,
				Role:     graph.RoleRepository,
				TypeName: "InvoiceRepository",
			}
		},
	})

	g, err := source.Refresh()
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("refreshed NodeCount = %d, want 2", g.NodeCount())
	}
	if g.Meta().Version <= baseVersion {
		t.Errorf("refresh should bump the version: %d -> %d", baseVersion, g.Meta().Version)
	}
}
