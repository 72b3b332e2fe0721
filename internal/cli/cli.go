// Package cli implements the archscope command-line interface.
//
// This package provides commands for exporting architecture graphs as
// diagrams, inspecting and exploring them, generating AI context documents,
// serving the introspection HTTP API, and managing graph snapshots. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - export: Generate DOT, Mermaid, JSON, SVG, PNG, or PDF artifacts
//   - inspect: Summarize a graph with layer and role statistics
//   - explore: Browse a graph interactively in the terminal
//   - context / pack: Produce AI context documents and agent packs
//   - serve: Run the HTTP introspection server
//   - snapshot: Save, list, show, and delete stored graphs
//   - cache: Manage the export artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Graph sources
//
// Every graph-consuming command accepts an optional graph file argument
// (written with graph.WriteGraphFile). Without one, the command falls back
// to the graph built from components registered in the current process,
// which is how applications embedding the CLI expose their own
// architecture.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/buildinfo"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/config"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/pipeline"
	"github.com/archscope/archscope/pkg/registry"
)

// appName is the application name used for directories and display.
const appName = "archscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ArchScope maps hexagonal architecture as a dependency graph",
		Long: `ArchScope builds a typed graph of an application's architecture from
registered components and turns it into diagrams, AI context documents,
and a queryable HTTP API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./archscope.toml if present)")

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.contextCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configured project file, or the defaults when no
// --config was given and ./archscope.toml does not exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(c.configPath)
}

// loadGraph resolves the graph a command operates on: an explicit graph
// file when one is given, otherwise the process-current registry graph.
// The returned string is the input path, empty for the registry graph.
func (c *CLI) loadGraph(args []string) (*graph.Graph, string, error) {
	if len(args) == 1 {
		g, err := graph.ReadGraphFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("load graph %s: %w", args[0], err)
		}
		return g, args[0], nil
	}
	if registry.ComponentCount() == 0 {
		return nil, "", fmt.Errorf("no graph file given and no components registered (pass a graph file written with graph.WriteGraphFile)")
	}
	return registry.Current(), "", nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	artifactCache, err := newArtifactCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(artifactCache, nil, c.Logger), nil
}

func newArtifactCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/archscope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatDOT}
	}
	return strings.Split(s, ",")
}
