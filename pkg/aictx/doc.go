// Package aictx exports architecture graphs as machine-readable context
// for AI agents and automated tooling.
//
// # Overview
//
// Two artifacts are produced, both JSON:
//
//   - [AIContext]: the graph's components and relationships plus the
//     architectural rules an agent must respect when changing the system
//   - [AgentPack]: an AIContext bundled with a guidelines snapshot and
//     embedded documentation, one payload with everything an external
//     agent needs
//
// # Usage
//
// Build a context from any graph:
//
//	ctx := aictx.Build(g, aictx.Options{})
//	data, err := aictx.MarshalContext(ctx)
//
// Or assemble a full pack with embedded docs:
//
//	pack := aictx.BuildPack(context.Background(), g, aictx.PackOptions{
//	    Name:     "shop",
//	    DocPaths: []string{"README.md", "docs/ARCHITECTURE.md"},
//	})
//	data, err := aictx.MarshalPack(pack)
//
// # Totality
//
// [Build] and [BuildPack] never fail: every graph is exportable, rule
// checking is advisory, and missing documentation sources are skipped.
// The only error path is JSON serialization of the finished envelope.
package aictx
