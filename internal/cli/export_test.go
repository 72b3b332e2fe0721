package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"registry graph default", "", "", "architecture"},
		{"derived from input", "", "graph.json", "graph"},
		{"derived from nested input", "", "out/shop.graph.json", "out/shop.graph"},
		{"output without extension", "diagram", "", "diagram"},
		{"output with artifact extension", "diagram.svg", "", "diagram"},
		{"output with mermaid extension", "diagram.mmd", "", "diagram"},
		{"output with unrelated extension", "bundle.tar", "", "bundle.tar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestIsArtifactExt(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{"dot", true},
		{"mmd", true},
		{"json", true},
		{"svg", true},
		{"png", true},
		{"pdf", true},
		{"txt", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isArtifactExt(tt.ext); got != tt.want {
			t.Errorf("isArtifactExt(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "arch")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"dot":     []byte("digraph architecture {}"),
			"mermaid": []byte("graph TD"),
		},
		formats:   []string{"dot", "mermaid"},
		output:    base,
		nodeCount: 2,
		edgeCount: 1,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot artifact: %v", err)
	}
	if string(dot) != "digraph architecture {}" {
		t.Errorf("dot artifact = %q", dot)
	}

	// Mermaid artifacts take the .mmd extension
	if _, err := os.Stat(base + ".mmd"); err != nil {
		t.Errorf("mermaid artifact: %v", err)
	}
}

func TestWriteArtifactsSingleExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.output.svg")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		output:    path,
		nodeCount: 1,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	// A single format with an explicit output goes to exactly that path
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact not at explicit path: %v", err)
	}
}

func TestWriteArtifactsSkipsMissing(t *testing.T) {
	base := filepath.Join(t.TempDir(), "arch")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("digraph {}")},
		formats:   []string{"dot", "json"},
		output:    base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("dot artifact: %v", err)
	}
	if _, err := os.Stat(base + ".json"); !os.IsNotExist(err) {
		t.Errorf("json artifact should not exist, stat err = %v", err)
	}
}
