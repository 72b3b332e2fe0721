package graph_test

import (
	"fmt"

	"github.com/archscope/archscope/pkg/graph"
)

func ExampleBuilder() {
	// Describe a small shop: one entity, one port, one adapter.
	g := graph.NewBuilder().
		WithDescription("Shop Architecture").
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop/domain")).
		AddNode(graph.NewNode(graph.LayerPort, graph.RoleRepository, "ProductRepository", "shop/ports")).
		AddNode(graph.NewNode(graph.LayerAdapter, graph.RoleAdapter, "PostgresProductRepository", "shop/adapters")).
		AddEdge(graph.NewEdge(
			graph.NewNodeID("PostgresProductRepository"),
			graph.NewNodeID("ProductRepository"),
			graph.RelationshipDepends,
		)).
		AddEdge(graph.NewEdge(
			graph.NewNodeID("PostgresProductRepository"),
			graph.NewNodeID("ProductRepository"),
			graph.RelationshipImplements,
		)).
		Build()

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Layers:", g.LayerCount())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Layers: 3
}

func ExampleGraph_Query() {
	g := graph.NewBuilder().
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop/domain")).
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop/domain")).
		AddNode(graph.NewNode(graph.LayerPort, graph.RoleRepository, "OrderRepository", "shop/ports")).
		Build()

	entities := g.Query().Layer(graph.LayerDomain).Role(graph.RoleEntity).Count()
	fmt.Println("Domain entities:", entities)

	n, ok := g.Query().TypeNameContains("Repository").First()
	fmt.Println("Found:", ok, n.TypeName)
	// Output:
	// Domain entities: 2
	// Found: true OrderRepository
}

func ExampleGraph_Summary() {
	g := graph.NewBuilder().
		WithDescription("Shop Architecture").
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop/domain")).
		AddNode(graph.NewNode(graph.LayerPort, graph.RoleRepository, "ProductRepository", "shop/ports")).
		Build()

	fmt.Print(g.Summary())
	// Output:
	// Shop Architecture:
	//   Nodes: 2
	//   Edges: 0
	//
	// By Layer:
	//   Domain: 1
	//   Port: 1
}
