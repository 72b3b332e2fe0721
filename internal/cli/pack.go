package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/aictx"
	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/httputil"
)

// =============================================================================
// Pack Command
// =============================================================================

func (c *CLI) packCommand() *cobra.Command {
	var (
		output  string
		docs    []string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "pack [graph-file]",
		Short: "Bundle context, guidelines, and docs for AI agents",
		Long: `Assemble a self-contained agent pack: the architecture context plus
coding guidelines and project documents, as a single JSON document.

Local doc paths are read from disk; http and https paths are fetched
and cached under the user cache directory. Missing documents are
skipped. Output goes to stdout unless -o is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := c.loadGraph(args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			docPaths := cfg.DocPaths()
			if len(docs) > 0 {
				// Catch ftp:// and friends here; they would otherwise be
				// treated as local paths and silently skipped.
				for _, d := range docs {
					if strings.Contains(d, "://") {
						if err := errors.ValidateURL(d); err != nil {
							return fmt.Errorf("--docs %s: %w", d, err)
						}
					}
				}
				if docPaths == nil {
					docPaths = aictx.DefaultDocPaths()
				}
				docPaths = append(docPaths, docs...)
			}

			pack := aictx.BuildPack(cmd.Context(), g, aictx.PackOptions{
				Context:  aictx.Options{Rules: cfg.DependencyRules()},
				DocPaths: docPaths,
				Client:   docClient(noCache, cfg.Server.CacheTTL),
			})
			data, err := aictx.MarshalPack(pack)
			if err != nil {
				return fmt.Errorf("marshal pack: %w", err)
			}
			if err := writeDocument(data, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Agent pack written")
				printFile(output)
				printDetail("Components: %d", len(pack.AIContext.Components))
				printDetail("Docs included: %d", len(pack.Docs.Entries))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringArrayVar(&docs, "docs", nil, "additional doc path or URL to include (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "fetch remote docs without the HTTP cache")
	return cmd
}

// docClient builds the HTTP client used for remote pack documents. When
// the on-disk cache cannot be set up the client runs uncached rather
// than failing the pack.
func docClient(noCache bool, ttl time.Duration) *httputil.Client {
	if noCache {
		return httputil.NewClient(nil, nil)
	}
	dir, err := cacheDir()
	if err != nil {
		return httputil.NewClient(nil, nil)
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "docs"), ttl)
	if err != nil {
		return httputil.NewClient(nil, nil)
	}
	return httputil.NewClient(hc, nil)
}
