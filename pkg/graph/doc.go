// Package graph provides the core architecture graph: typed nodes and edges
// describing an application's components, assembled into an immutable,
// queryable structure.
//
// # Architecture
//
// The package sits at the center of Archscope's pipeline:
//
//   - [NodeID], [Layer], [Role], [Relationship]: the descriptor vocabulary
//   - [Node], [Edge]: one component and one typed connection between two
//   - [Builder]: mutable accumulator for assembling graphs
//   - [Graph]: the immutable result, safe for concurrent reads
//   - [Query]: fluent filtering over a graph's nodes
//
// pkg/registry populates a Builder from self-registered component
// descriptors; pkg/viz and pkg/aictx consume the resulting Graph.
//
// # Construction Policy
//
// Graph construction is deliberately permissive:
//
//   - Adding two nodes with the same ID keeps the last one. IDs derive from
//     type names, so duplicate registration of the same component is
//     idempotent rather than an error.
//   - Edges are an ordered sequence, not a set. Duplicates are preserved,
//     and edge targets may reference IDs with no corresponding node
//     (dangling edges). [Builder.Build] performs no validation pass.
//
// This keeps partial and speculative graphs cheap to build, which matters
// for tests and for visualization examples that wire edges before all nodes
// exist. Traversals that follow edges must check node existence themselves.
//
// # Usage
//
//	g := graph.NewBuilder().
//		WithDescription("Shop Architecture").
//		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop/domain")).
//		AddNode(graph.NewNode(graph.LayerPort, graph.RoleRepository, "ProductRepository", "shop/ports")).
//		AddEdge(graph.NewEdge(
//			graph.NewNodeID("ProductRepository"),
//			graph.NewNodeID("Product"),
//			graph.RelationshipDepends,
//		)).
//		Build()
//
//	domain := g.NodesByLayer(graph.LayerDomain)
//
// # Serialization
//
// Graphs serialize to a node-link JSON format via [MarshalGraph],
// [WriteGraphFile] and friends:
//
//	{
//	  "meta": {"description": "Shop Architecture", "version": 1},
//	  "nodes": [{"id": "229437755893286", "layer": "Domain", ...}],
//	  "edges": [{"source": "...", "target": "...", "relationship": "Depends"}]
//	}
//
// Node IDs are rendered as decimal strings so the format survives consumers
// that cannot represent 64-bit integers exactly. Nodes are sorted by ID on
// write for deterministic output.
package graph
