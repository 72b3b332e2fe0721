package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/internal/server"
	"github.com/archscope/archscope/pkg/registry"
)

// =============================================================================
// Serve Command
// =============================================================================

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [graph-file]",
		Short: "Serve the architecture graph over HTTP",
		Long: `Run an HTTP server exposing the architecture graph: the raw document,
summaries, exports, the AI context, and agent packs.

With a graph file the server re-reads it on POST /api/refresh. Without
one it serves the components registered in this process. The server
runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			source, err := newGraphSource(args)
			if err != nil {
				return err
			}

			srv, err := server.New(ctx, cfg, source, loggerFromContext(ctx))
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			printInfo("Serving %s on %s", source.Name(), StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config, e.g. :8080)")
	return cmd
}

// newGraphSource picks the server's graph source: a file when one is
// given, otherwise the process registry.
func newGraphSource(args []string) (*server.GraphSource, error) {
	if len(args) == 1 {
		return server.FileSource(args[0])
	}
	if registry.ComponentCount() == 0 {
		return nil, fmt.Errorf("no graph file given and no components registered (pass a graph file written with graph.WriteGraphFile)")
	}
	return server.RegistrySource(), nil
}

// displayAddr turns a listen address into something a browser accepts:
// a bare ":8080" becomes "localhost:8080".
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
