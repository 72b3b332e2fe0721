// Package pkg provides the core libraries for Archscope architecture graphs.
//
// # Overview
//
// Archscope captures an application's architecture as a typed graph of
// components (entities, ports, adapters, use cases) and turns it into
// diagrams, machine-readable exports, and AI agent context. The pkg
// directory is organized into four main areas:
//
//  1. [graph] - The architecture graph model (nodes, edges, layers, queries)
//  2. [registry] - In-process component registration that assembles the graph
//  3. [pipeline] - Orchestration (export → render, with caching)
//  4. [aictx] - AI context and agent pack generation
//
// # Architecture
//
// The typical data flow through Archscope:
//
//	Application components
//	         ↓
//	    [registry] package (describe components at init)
//	         ↓
//	    [graph] package (typed graph + queries + cycle analysis)
//	         ↓
//	    [pipeline] package (export + render, cached)
//	         ↓
//	    DOT/Mermaid/JSON/SVG/PNG/PDF output
//
// # Quick Start
//
// Describe an architecture and export it as a diagram:
//
//	import (
//	    "github.com/archscope/archscope/pkg/graph"
//	    "github.com/archscope/archscope/pkg/viz"
//	)
//
//	// 1. Build the graph
//	g := graph.NewBuilder().
//	    AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop/domain")).
//	    AddNode(graph.NewNode(graph.LayerPort, graph.RoleRepository, "OrderRepository", "shop/ports")).
//	    AddEdge(graph.NewEdge(graph.NewNodeID("OrderRepository"), graph.NewNodeID("Order"), graph.RelationshipDepends)).
//	    Build()
//
//	// 2. Export to DOT
//	dot, _ := viz.ExportGraph(g, viz.DefaultStyle(), viz.NewDOTExporter())
//
// Long-running applications register components instead and read the
// assembled graph back at any time:
//
//	registry.RegisterComponent(ordersComponent{})
//	g := registry.Current()
//
// # Main Packages
//
// ## Graph Model
//
// [graph] - The architecture graph: nodes classified by [graph.Layer] and
// [graph.Role], typed edges ([graph.Relationship]), a fluent [graph.Builder],
// filter queries, dependency cycle detection, and JSON serialization.
//
// [registry] - Process-wide component collection. Components describe
// themselves from init functions; the registry assembles and versions the
// graph on demand.
//
// ## Visualization
//
// [viz] - Text diagram generation. DOT (Graphviz) and Mermaid exporters
// behind the [viz.Exporter] interface, with shared styling.
//
// [pipeline] - The complete export pipeline used by CLI and server: text
// exports (dot, mermaid, json) plus image rendering (svg, png, pdf) via
// Graphviz, with artifact caching between stages.
//
// ## Infrastructure
//
// [cache] - Artifact cache keyed by graph content hash. Null, file, and
// Redis backends behind one interface, plus the [cache.Keyer] that derives
// deterministic keys.
//
// [snapshot] - Point-in-time graph persistence. File, memory, and MongoDB
// stores behind [snapshot.Store].
//
// [httputil] - HTTP client for fetching remote documentation: response
// caching, retry with backoff, rate limit handling.
//
// [config] - TOML configuration with validated defaults for cache,
// snapshot, and server settings.
//
// [errors] - Structured error codes shared across CLI and server
// boundaries.
//
// [observability] - Pluggable hooks for pipeline, cache, and HTTP events.
// No-op by default.
//
// [buildinfo] - Version and build metadata stamped at link time.
//
// ## AI Context
//
// [aictx] - Machine-readable architecture context: components,
// relationships, dependency rules, and advisory suggestions, plus the agent
// pack bundling context with project docs.
//
// # Common Workflows
//
// Query the graph:
//
//	repos := g.Query().Layer(graph.LayerPort).Role(graph.RoleRepository).Execute()
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), cache.NewDefaultKeyer(), logger)
//	result, _ := runner.Execute(ctx, g, pipeline.Options{Formats: []string{"svg"}})
//
// Generate agent context:
//
//	c := aictx.Build(g, aictx.Options{})
//	data, _ := aictx.MarshalContext(c)
//
// Snapshot the graph:
//
//	store, _ := snapshot.NewFileStore(dir)
//	snap, _ := snapshot.New("before-refactor", g)
//	_ = store.Save(ctx, snap)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/graph/...    # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/archscope/archscope/pkg/graph
// [registry]: https://pkg.go.dev/github.com/archscope/archscope/pkg/registry
// [viz]: https://pkg.go.dev/github.com/archscope/archscope/pkg/viz
// [pipeline]: https://pkg.go.dev/github.com/archscope/archscope/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/archscope/archscope/pkg/cache
// [snapshot]: https://pkg.go.dev/github.com/archscope/archscope/pkg/snapshot
// [httputil]: https://pkg.go.dev/github.com/archscope/archscope/pkg/httputil
// [config]: https://pkg.go.dev/github.com/archscope/archscope/pkg/config
// [errors]: https://pkg.go.dev/github.com/archscope/archscope/pkg/errors
// [observability]: https://pkg.go.dev/github.com/archscope/archscope/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/archscope/archscope/pkg/buildinfo
// [aictx]: https://pkg.go.dev/github.com/archscope/archscope/pkg/aictx
package pkg
