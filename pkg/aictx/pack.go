package aictx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/archscope/archscope/pkg/buildinfo"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/httputil"
)

// =============================================================================
// Pack Document Model
// =============================================================================

// AgentPack bundles everything an AI agent needs to work on a codebase:
// the architecture context, the team's working guidelines, and the project
// documents that explain intent.
type AgentPack struct {
	SchemaVersion  string             `json:"schema_version"`
	PackageName    string             `json:"package_name"`
	PackageVersion string             `json:"package_version"`
	AIContext      *AIContext         `json:"ai_context"`
	Guidelines     GuidelinesSnapshot `json:"guidelines"`
	Docs           DocBundle          `json:"docs"`
}

// GuidelinesSnapshot captures the working rules agents must follow when
// modifying the codebase the pack describes.
type GuidelinesSnapshot struct {
	DependencyDirection    string   `json:"dependency_direction"`
	PortsAreInterfaces     bool     `json:"ports_are_interfaces"`
	AdaptersImplementPorts bool     `json:"adapters_implement_ports"`
	TestingMandate         string   `json:"testing_mandate"`
	ErrorGuidelines        []string `json:"error_guidelines"`
}

// DefaultGuidelines returns the guidelines snapshot for a hexagonal Go
// codebase.
func DefaultGuidelines() GuidelinesSnapshot {
	return GuidelinesSnapshot{
		DependencyDirection:    "outer layers depend inward; domain depends on nothing",
		PortsAreInterfaces:     true,
		AdaptersImplementPorts: true,
		TestingMandate:         "every exported operation has package-level tests",
		ErrorGuidelines: []string{
			"wrap errors with context before returning",
			"sentinel errors for expected conditions",
			"no panics in library code",
		},
	}
}

// DocBundle holds the project documents included in a pack.
type DocBundle struct {
	Entries []DocEntry `json:"entries"`
}

// DocEntry is one document with its source path and derived title.
type DocEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Bytes   int    `json:"bytes"`
}

// =============================================================================
// Pack Options
// =============================================================================

// PackOptions configures pack assembly. The zero value produces a pack
// for the current binary with the default doc paths and no remote fetching.
type PackOptions struct {
	// Name is the package name stamped into the pack. Empty uses "archscope".
	Name string

	// Version is the package version. Empty uses the binary's build version.
	Version string

	// Context configures the embedded architecture context.
	Context Options

	// Guidelines overrides the default guidelines snapshot. Nil keeps defaults.
	Guidelines *GuidelinesSnapshot

	// DocPaths lists documents to include. Local paths are read from disk;
	// entries with an http or https scheme are fetched with Client. Nil uses
	// DefaultDocPaths. Missing or unreadable documents are skipped.
	DocPaths []string

	// Client fetches remote doc paths. Nil disables remote fetching and
	// remote paths are skipped.
	Client *httputil.Client
}

func (o *PackOptions) setDefaults() {
	if o.Name == "" {
		o.Name = "archscope"
	}
	if o.Version == "" {
		o.Version = buildinfo.Version
	}
	if o.Guidelines == nil {
		g := DefaultGuidelines()
		o.Guidelines = &g
	}
	if o.DocPaths == nil {
		o.DocPaths = DefaultDocPaths()
	}
}

// DefaultDocPaths returns the documents a pack includes when none are
// configured.
func DefaultDocPaths() []string {
	return []string{
		"README.md",
		"docs/ARCHITECTURE.md",
		"CONTRIBUTING.md",
		"AGENTS.md",
	}
}

// =============================================================================
// Pack Assembly
// =============================================================================

// BuildPack assembles a complete agent pack for a graph. Like Build it is
// total: documents that cannot be read are skipped rather than failing the
// pack, so a missing README never blocks an export.
func BuildPack(ctx context.Context, g *graph.Graph, opts PackOptions) *AgentPack {
	opts.setDefaults()

	return &AgentPack{
		SchemaVersion:  SchemaVersion,
		PackageName:    opts.Name,
		PackageVersion: opts.Version,
		AIContext:      Build(g, opts.Context),
		Guidelines:     *opts.Guidelines,
		Docs:           loadDocs(ctx, opts.DocPaths, opts.Client),
	}
}

// loadDocs reads every resolvable doc path into the bundle. Read failures
// are skipped silently: packs describe what exists, not what should exist.
func loadDocs(ctx context.Context, paths []string, client *httputil.Client) DocBundle {
	entries := make([]DocEntry, 0, len(paths))
	for _, path := range paths {
		content, ok := loadDoc(ctx, path, client)
		if !ok {
			continue
		}
		entries = append(entries, DocEntry{
			Path:    path,
			Title:   deriveTitle(content, path),
			Content: content,
			Bytes:   len(content),
		})
	}
	return DocBundle{Entries: entries}
}

func loadDoc(ctx context.Context, path string, client *httputil.Client) (string, bool) {
	if isRemote(path) {
		if client == nil {
			return "", false
		}
		content, err := client.GetText(ctx, path)
		if err != nil {
			return "", false
		}
		return content, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// deriveTitle picks a display title for a document: the first non-empty
// line with any markdown heading marker stripped, falling back to the
// file name, then to "document".
func deriveTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if trimmed == "" {
			continue
		}
		return trimmed
	}
	if base := filepath.Base(path); base != "." && base != "/" {
		return base
	}
	return "document"
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalPack serializes a pack to pretty-printed JSON bytes.
func MarshalPack(p *AgentPack) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode pack: %w", err)
	}
	return data, nil
}

// WritePackFile writes a pack to a JSON file.
func WritePackFile(p *AgentPack, path string) error {
	data, err := MarshalPack(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
