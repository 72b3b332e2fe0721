package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/aictx"
)

// =============================================================================
// Context Command
// =============================================================================

func (c *CLI) contextCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "context [graph-file]",
		Short: "Generate a machine-readable architecture context",
		Long: `Generate a JSON context describing the architecture graph for AI
coding assistants: components, relationships, dependency constraints,
and improvement suggestions.

Reads the graph from a file when given, otherwise from the components
registered in this process. Output goes to stdout unless -o is set.`,
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

			ac := aictx.Build(g, aictx.Options{Rules: cfg.DependencyRules()})
			data, err := aictx.MarshalContext(ac)
			if err != nil {
				return fmt.Errorf("marshal context: %w", err)
			}
			if err := writeDocument(data, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Context written")
				printFile(output)
				printDetail("Components: %d", len(ac.Components))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout
// can stand in for an io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a writer for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeDocument writes data to path, or to stdout when path is empty.
// Stdout stays bare so the document is pipeable; callers confirm file
// writes themselves.
func writeDocument(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
