package cli

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/graph"
)

// inspectCommand creates the inspect command for summarizing a graph.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Summarize the architecture graph",
		Long: `Summarize the architecture graph: node and edge counts plus a layer and
role breakdown.

With no graph file, the process-current registry graph is inspected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := c.loadGraph(args)
			if err != nil {
				return err
			}
			runInspect(g)
			return nil
		},
	}
}

// runInspect prints the graph overview followed by the layer/role table.
func runInspect(g *graph.Graph) {
	meta := g.Meta()

	fmt.Print(g.Summary())
	printNewline()
	printKeyValue("Version", strconv.FormatUint(meta.Version, 10))
	printKeyValue("Created", time.Unix(meta.CreatedAt, 0).UTC().Format("Jan 2, 2006 15:04 UTC"))

	if g.IsEmpty() {
		printNewline()
		printInfo("Graph is empty")
		return
	}

	printNewline()
	fmt.Println(renderLayerRoleTable(g))
	printNewline()
	printNextStep("Export", appName+" export -f svg")
}

// layerRoleRows aggregates node counts per layer and role, with layers in
// canonical order and roles sorted alphabetically within each layer.
func layerRoleRows(g *graph.Graph) [][]string {
	type key struct {
		layer graph.Layer
		role  graph.Role
	}
	counts := make(map[key]int)
	roles := make(map[graph.Layer][]graph.Role)
	for _, n := range g.Nodes() {
		k := key{n.Layer, n.Role}
		if counts[k] == 0 {
			roles[n.Layer] = append(roles[n.Layer], n.Role)
		}
		counts[k]++
	}

	var rows [][]string
	for _, layer := range graph.Layers() {
		layerRoles := roles[layer]
		slices.Sort(layerRoles)
		for _, role := range layerRoles {
			rows = append(rows, []string{
				layer.String(),
				role.String(),
				strconv.Itoa(counts[key{layer, role}]),
			})
		}
	}
	return rows
}

// renderLayerRoleTable renders the per-layer role counts as a bordered
// table with layer-colored rows.
func renderLayerRoleTable(g *graph.Graph) string {
	rows := layerRoleRows(g)
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "Role", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(rows) {
				return lipgloss.NewStyle().Foreground(layerColor(graph.Layer(rows[row][0])))
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
