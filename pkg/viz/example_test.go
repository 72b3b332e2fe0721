package viz_test

import (
	"fmt"
	"log"

	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/viz"
)

func ExampleExportGraph() {
	g := graph.NewBuilder().
		AddNode(graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop/domain")).
		Build()

	out, err := viz.ExportGraph(g, viz.DefaultStyle(), viz.NewMermaidExporter())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// graph TD
	//   210685446657["Order\n(Entity)"]
}

func ExampleForFormat() {
	e, err := viz.ForFormat("json")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(e.FormatName())
	fmt.Println(e.FileExtension())
	// Output:
	// JSON (D3.js)
	// json
}
