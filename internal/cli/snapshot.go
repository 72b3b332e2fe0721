package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/config"
	apperrors "github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/snapshot"
)

// =============================================================================
// Snapshot Command
// =============================================================================

func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and inspect graph snapshots",
		Long: `Persist point-in-time copies of the architecture graph and browse them
later. The storage backend (file or mongo) comes from the configuration
file; the default is a file store under the user config directory.`,
	}

	cmd.AddCommand(
		c.snapshotSaveCommand(),
		c.snapshotListCommand(),
		c.snapshotShowCommand(),
		c.snapshotDeleteCommand(),
	)
	return cmd
}

// newSnapshotStore opens the configured snapshot backend.
func newSnapshotStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendMongo:
		return snapshot.NewMongoStore(ctx, snapshot.MongoConfig{
			URI:        cfg.Snapshot.URI,
			Database:   cfg.Snapshot.Database,
			Collection: cfg.Snapshot.Collection,
		})
	default:
		return snapshot.NewFileStore(cfg.Snapshot.Dir)
	}
}

// =============================================================================
// Save
// =============================================================================

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [graph-file]",
		Short: "Save the current graph as a snapshot",
		Long: `Store a copy of the architecture graph under a fresh id. Reads the
graph from a file when given, otherwise from the components registered
in this process.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, _, err := c.loadGraph(args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newSnapshotStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			snap, err := snapshot.New(name, g)
			if err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}

			prog := newProgress(loggerFromContext(ctx))
			if err := store.Save(ctx, snap); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			prog.done(fmt.Sprintf("Saved snapshot %s", shortID(snap.ID)))

			printSuccess("Snapshot saved")
			printKeyValue("ID", snap.ID)
			if snap.Name != "" {
				printKeyValue("Name", snap.Name)
			}
			printDetail("%d nodes, %d edges", snap.NodeCount(), snap.EdgeCount())
			printNextStep("Inspect", fmt.Sprintf("%s snapshot show %s", appName, shortID(snap.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "human-readable snapshot name")
	return cmd
}

// =============================================================================
// List
// =============================================================================

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newSnapshotStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			snaps, err := store.List(ctx)
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			if len(snaps) == 0 {
				printInfo("No snapshots stored")
				printNextStep("Save one", appName+" snapshot save")
				return nil
			}

			fmt.Println(renderSnapshotTable(snaps))
			return nil
		},
	}
}

// renderSnapshotTable renders the snapshot listing as a bordered table.
func renderSnapshotTable(snaps []*snapshot.Snapshot) string {
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		name := s.Name
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{
			shortID(s.ID),
			name,
			formatRelativeTime(s.CreatedAt),
			strconv.Itoa(s.NodeCount()),
			strconv.Itoa(s.EdgeCount()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Created", "Nodes", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				style = style.Foreground(colorCyan)
			}
			return style
		}).
		Render()
}

// =============================================================================
// Show
// =============================================================================

func (c *CLI) snapshotShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored snapshot",
		Long: `Print a stored snapshot's metadata and graph summary. With -o the
stored graph is written back out as a graph file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newSnapshotStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			snap, err := store.Get(ctx, args[0])
			if errors.Is(err, snapshot.ErrNotFound) {
				return apperrors.Wrap(apperrors.ErrCodeSnapshotNotFound, err,
					"snapshot %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("get snapshot: %w", err)
			}

			g, err := snap.Restore()
			if err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}

			printKeyValue("ID", snap.ID)
			if snap.Name != "" {
				printKeyValue("Name", snap.Name)
			}
			printKeyValue("Created", snap.CreatedAt.UTC().Format("Jan 2, 2006 15:04 UTC"))
			printNewline()
			fmt.Print(g.Summary())

			if output != "" {
				if err := graph.WriteGraphFile(g, output); err != nil {
					return fmt.Errorf("write graph: %w", err)
				}
				printNewline()
				printSuccess("Graph written")
				printFile(output)
				printNextStep("Export", fmt.Sprintf("%s export %s -f svg", appName, output))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the stored graph to this file")
	return cmd
}

// =============================================================================
// Delete
// =============================================================================

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newSnapshotStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			err = store.Delete(ctx, args[0])
			if errors.Is(err, snapshot.ErrNotFound) {
				return apperrors.Wrap(apperrors.ErrCodeSnapshotNotFound, err,
					"snapshot %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("delete snapshot: %w", err)
			}

			printSuccess("Snapshot %s deleted", args[0])
			return nil
		},
	}
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// shortID trims a uuid to its first segment for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatRelativeTime renders t relative to now for recent times, falling
// back to an absolute date past a week.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
