package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/pipeline"
)

// exportCommand creates the export command for producing graph artifacts.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Export the architecture graph to text or image formats",
		Long: `Export the architecture graph to text or image formats.

Text formats (dot, mermaid, json) are produced directly from the graph;
image formats (svg, png, pdf) are rendered from the DOT export via
Graphviz. Mermaid artifacts are written with the .mmd extension.

With no graph file, the process-current registry graph is exported.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args, formats, output, noCache, refresh, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), mermaid, json, svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute artifacts, bypassing cached results")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "raster scale factor for png output")

	return cmd
}

// runExport loads the graph, runs the export pipeline, and writes artifacts.
func (c *CLI) runExport(ctx context.Context, args []string, formats []string, output string, noCache, refresh bool, scale float64) error {
	g, input, err := c.loadGraph(args)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Formats: formats,
		Style:   cfg.VizStyle(),
		Scale:   scale,
		Refresh: refresh,
		Logger:  loggerFromContext(ctx),
	}

	spinner := newSpinnerWithContext(ctx, "Exporting graph...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return fmt.Errorf("export: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		input:     input,
		output:    output,
		nodeCount: result.Stats.NodeCount,
		edgeCount: result.Stats.EdgeCount,
		cacheHit:  result.CacheInfo.ExportHit || result.CacheInfo.RenderHit,
	})
}

// defaultExportBase names artifacts exported from the registry graph,
// where there is no input file to derive a name from.
const defaultExportBase = "architecture"

// artifactWriteParams bundles everything writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodeCount int
	edgeCount int
	cacheHit  bool
}

// writeArtifacts writes each requested artifact to disk and prints a styled
// summary. With a single format and an explicit output, the artifact goes
// to exactly that path; otherwise paths are derived from the base path plus
// the per-format extension.
func writeArtifacts(p artifactWriteParams) error {
	single := len(p.formats) == 1 && p.output != ""

	printSuccess("Export complete")
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := p.output
		if !single {
			path = basePath(p.output, p.input) + "." + pipeline.ArtifactExtension(format)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.nodeCount, p.edgeCount, p.cacheHit)

	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input, falling
// back to a fixed name when the graph came from the registry. If output has
// an artifact extension (.svg, .mmd, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultExportBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if isArtifactExt(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// isArtifactExt reports whether ext is an extension the export command
// writes.
func isArtifactExt(ext string) bool {
	if ext == "mmd" {
		return true
	}
	return pipeline.ValidFormats[ext]
}
