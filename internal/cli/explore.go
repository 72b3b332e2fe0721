package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/graph"
)

// =============================================================================
// Explore Command
// =============================================================================

func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [graph-file]",
		Short: "Browse the architecture graph interactively",
		Long: `Open an interactive terminal browser over the architecture graph.

Nodes are listed grouped by layer. Moving the cursor shows the selected
component's purpose and its incoming and outgoing relationships.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := c.loadGraph(args)
			if err != nil {
				return err
			}
			if g.IsEmpty() {
				printInfo("Graph is empty; nothing to explore")
				return nil
			}
			if _, err := tea.NewProgram(NewExplorerModel(g)).Run(); err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// Explorer Model
// =============================================================================

// ExplorerModel is the Bubble Tea model behind `archscope explore`. It
// shows a scrollable node list with a detail pane for the selection.
type ExplorerModel struct {
	Graph  *graph.Graph
	Nodes  []graph.Node
	Cursor int
	Height int
	Offset int
}

// NewExplorerModel builds the explorer over g with nodes ordered by
// layer, then type name.
func NewExplorerModel(g *graph.Graph) ExplorerModel {
	return ExplorerModel{
		Graph:  g,
		Nodes:  sortedNodes(g),
		Height: 15,
	}
}

// sortedNodes returns the graph's nodes in display order: canonical
// layer order first, type name within a layer.
func sortedNodes(g *graph.Graph) []graph.Node {
	rank := make(map[graph.Layer]int, len(graph.Layers()))
	for i, layer := range graph.Layers() {
		rank[layer] = i
	}
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		if d := rank[a.Layer] - rank[b.Layer]; d != 0 {
			return d
		}
		return strings.Compare(a.TypeName, b.TypeName)
	})
	return nodes
}

// Init implements tea.Model.
func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Architecture Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}
	visible := m.Nodes[m.Offset:end]

	rows := make([][]string, 0, len(visible))
	for i, n := range visible {
		cursor := "  "
		if m.Offset+i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			n.Layer.String(),
			n.TypeName,
			n.Role.String(),
			n.ModulePath,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Type", "Role", "Module").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(rows) {
				if m.Offset+row == m.Cursor {
					style = style.Bold(true)
				}
				if col == 1 {
					style = style.Foreground(layerColor(graph.Layer(rows[row][1])))
				}
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d/%d]", m.Cursor+1, len(m.Nodes))))
	b.WriteString("\n\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")

	return b.String()
}

// detailView renders the selected node's purpose and relationships.
func (m ExplorerModel) detailView() string {
	if m.Cursor >= len(m.Nodes) {
		return ""
	}
	n := m.Nodes[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(n.TypeName))
	if n.Purpose != "" {
		b.WriteString("  ")
		b.WriteString(StyleDim.Render(n.Purpose))
	}
	b.WriteString("\n")

	outgoing := m.Graph.EdgesFrom(n.ID)
	incoming := m.Graph.EdgesTo(n.ID)
	if len(outgoing) == 0 && len(incoming) == 0 {
		b.WriteString(StyleDim.Render("  no edges"))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range outgoing {
		line := fmt.Sprintf("  → %s %s", strings.ToLower(e.Relationship.String()), m.nodeLabel(e.Target))
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, e := range incoming {
		line := fmt.Sprintf("  ← %s by %s", strings.ToLower(e.Relationship.String()), m.nodeLabel(e.Source))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// nodeLabel resolves an edge endpoint to its type name. Dangling
// endpoints fall back to the numeric identifier.
func (m ExplorerModel) nodeLabel(id graph.NodeID) string {
	if n, ok := m.Graph.Node(id); ok {
		return n.TypeName
	}
	return id.String()
}
