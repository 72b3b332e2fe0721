package cli

import (
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/pipeline"
	"github.com/archscope/archscope/pkg/registry"
)

func testGraph() *graph.Graph {
	product := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop::domain")
	repo := graph.NewNode(graph.LayerPort, graph.RoleRepository, "ProductRepository", "shop::ports")

	return graph.NewBuilder().
		WithDescription("shop architecture").
		AddNode(product).
		AddNode(repo).
		AddEdge(graph.NewEdge(repo.ID, product.ID, graph.RelationshipDepends)).
		Build()
}

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI().RootCommand()

	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}

	want := []string{"export", "inspect", "explore", "context", "pack", "serve", "snapshot", "cache", "completion"}
	var got []string
	for _, sub := range root.Commands() {
		got = append(got, sub.Name())
	}
	for _, name := range want {
		if !slices.Contains(got, name) {
			t.Errorf("RootCommand() missing subcommand %q (have %v)", name, got)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to dot", "", []string{pipeline.FormatDOT}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "dot,mermaid,json", []string{"dot", "mermaid", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadGraphFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(testGraph(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	g, input, err := newTestCLI().loadGraph([]string{path})
	if err != nil {
		t.Fatalf("loadGraph: %v", err)
	}
	if input != path {
		t.Errorf("input path = %q, want %q", input, path)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
}

func TestLoadGraphMissingFile(t *testing.T) {
	_, _, err := newTestCLI().loadGraph([]string{filepath.Join(t.TempDir(), "absent.json")})
	if err == nil {
		t.Fatal("expected error for missing graph file")
	}
}

func TestLoadGraphEmptyRegistry(t *testing.T) {
	registry.Reset()
	t.Cleanup(registry.Reset)

	_, _, err := newTestCLI().loadGraph(nil)
	if err == nil {
		t.Fatal("expected error with no file and an empty registry")
	}
}

func TestLoadGraphFromRegistry(t *testing.T) {
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

	g, input, err := newTestCLI().loadGraph(nil)
	if err != nil {
		t.Fatalf("loadGraph: %v", err)
	}
	if input != "" {
		t.Errorf("input path = %q, want empty for registry graph", input)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}
