package aictx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/archscope/archscope/pkg/buildinfo"
	"github.com/archscope/archscope/pkg/graph"
)

// buildShopGraph returns a small three-node fixture with two edges. Node ids
// sort as Product < PostgresProductRepository < ProductRepository.
func buildShopGraph() *graph.Graph {
	product := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Product", "shop::domain")
	port := graph.NewNode(graph.LayerPort, graph.RoleRepository, "ProductRepository", "shop::ports")
	adapter := graph.NewNode(graph.LayerAdapter, graph.RoleAdapter, "PostgresProductRepository", "shop::adapters")

	return graph.NewBuilder().
		AddNodes(product, port, adapter).
		AddEdge(graph.NewEdge(adapter.ID, port.ID, graph.RelationshipImplements)).
		AddEdge(graph.NewEdge(port.ID, product.ID, graph.RelationshipDepends)).
		Build()
}

func TestBuildComponentOrder(t *testing.T) {
	c := Build(buildShopGraph(), Options{})

	if got := len(c.Components); got != 3 {
		t.Fatalf("len(Components) = %d, want 3", got)
	}

	want := []string{"Product", "PostgresProductRepository", "ProductRepository"}
	for i, name := range want {
		if c.Components[i].TypeName != name {
			t.Errorf("Components[%d].TypeName = %q, want %q", i, c.Components[i].TypeName, name)
		}
	}
}

func TestBuildComponentFields(t *testing.T) {
	c := Build(buildShopGraph(), Options{})

	var port ComponentInfo
	found := false
	for _, comp := range c.Components {
		if comp.TypeName == "ProductRepository" {
			port = comp
			found = true
		}
	}
	if !found {
		t.Fatal("ProductRepository component missing")
	}

	if port.Layer != "Port" {
		t.Errorf("Layer = %q, want %q", port.Layer, "Port")
	}
	if port.Role != "Repository" {
		t.Errorf("Role = %q, want %q", port.Role, "Repository")
	}
	if port.ModulePath != "shop::ports" {
		t.Errorf("ModulePath = %q, want %q", port.ModulePath, "shop::ports")
	}

	wantDep := graph.NewNodeID("Product").String()
	if len(port.Dependencies) != 1 || port.Dependencies[0] != wantDep {
		t.Errorf("Dependencies = %v, want [%s]", port.Dependencies, wantDep)
	}
}

func TestBuildComponentPurpose(t *testing.T) {
	n := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop::domain").
		WithPurpose("Customer order aggregate")
	g := graph.NewBuilder().AddNode(n).Build()

	c := Build(g, Options{})
	if got := c.Components[0].Purpose; got != "Customer order aggregate" {
		t.Errorf("Purpose = %q, want %q", got, "Customer order aggregate")
	}
}

func TestBuildRelationships(t *testing.T) {
	c := Build(buildShopGraph(), Options{})

	if got := len(c.Relationships); got != 2 {
		t.Fatalf("len(Relationships) = %d, want 2", got)
	}

	first := c.Relationships[0]
	if first.From != graph.NewNodeID("PostgresProductRepository").String() {
		t.Errorf("From = %q, want adapter id", first.From)
	}
	if first.To != graph.NewNodeID("ProductRepository").String() {
		t.Errorf("To = %q, want port id", first.To)
	}
	if first.RelationshipType != "Implements" {
		t.Errorf("RelationshipType = %q, want %q", first.RelationshipType, "Implements")
	}
	if !first.IsValid {
		t.Error("adapter -> port should be valid")
	}
	if first.ValidationMessage != "" {
		t.Errorf("ValidationMessage = %q, want empty", first.ValidationMessage)
	}
}

func TestBuildFlagsDomainToInfrastructureEdge(t *testing.T) {
	entity := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop::domain")
	db := graph.NewNode(graph.LayerInfrastructure, graph.RoleAdapter, "Database", "shop::infra")
	g := graph.NewBuilder().
		AddNodes(entity, db).
		AddEdge(graph.NewEdge(entity.ID, db.ID, graph.RelationshipDepends)).
		Build()

	c := Build(g, Options{})
	if len(c.Relationships) != 1 {
		t.Fatalf("len(Relationships) = %d, want 1", len(c.Relationships))
	}

	rel := c.Relationships[0]
	if rel.IsValid {
		t.Error("domain -> infrastructure should be flagged invalid")
	}
	if rel.ValidationMessage != "Violates layer dependency rules" {
		t.Errorf("ValidationMessage = %q", rel.ValidationMessage)
	}
}

func TestBuildDanglingEdgeIsValid(t *testing.T) {
	entity := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop::domain")
	g := graph.NewBuilder().
		AddNode(entity).
		AddEdge(graph.NewEdge(entity.ID, graph.NewNodeID("Ghost"), graph.RelationshipDepends)).
		Build()

	c := Build(g, Options{})
	if len(c.Relationships) != 1 {
		t.Fatalf("len(Relationships) = %d, want 1", len(c.Relationships))
	}
	if !c.Relationships[0].IsValid {
		t.Error("edge to unregistered node should pass the advisory check")
	}
}

func TestBuildCustomRulesOverride(t *testing.T) {
	entity := graph.NewNode(graph.LayerDomain, graph.RoleEntity, "Order", "shop::domain")
	db := graph.NewNode(graph.LayerInfrastructure, graph.RoleAdapter, "Database", "shop::infra")
	g := graph.NewBuilder().
		AddNodes(entity, db).
		AddEdge(graph.NewEdge(entity.ID, db.ID, graph.RelationshipDepends)).
		Build()

	opts := Options{
		Rules: []DependencyRule{
			{FromLayer: "Domain", ToLayer: "Infrastructure", Allowed: true, Reason: "relaxed for tests"},
		},
	}
	c := Build(g, opts)

	if !c.Relationships[0].IsValid {
		t.Error("custom rules should override the default disallow")
	}
	if len(c.Constraints.DependencyRules) != 1 {
		t.Errorf("len(DependencyRules) = %d, want 1", len(c.Constraints.DependencyRules))
	}
}

func TestBuildSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		ports   int
		adapter int
		want    int
	}{
		{"MorePortsThanAdapters", 2, 1, 1},
		{"Balanced", 1, 1, 0},
		{"MoreAdaptersThanPorts", 1, 2, 0},
		{"NoComponents", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := graph.NewBuilder()
			for i := 0; i < tt.ports; i++ {
				name := "Port" + string(rune('A'+i))
				b.AddNode(graph.NewNode(graph.LayerPort, graph.RoleRepository, name, "shop::ports"))
			}
			for i := 0; i < tt.adapter; i++ {
				name := "Adapter" + string(rune('A'+i))
				b.AddNode(graph.NewNode(graph.LayerAdapter, graph.RoleAdapter, name, "shop::adapters"))
			}

			c := Build(b.Build(), Options{})
			if got := len(c.Suggestions); got != tt.want {
				t.Fatalf("len(Suggestions) = %d, want %d", got, tt.want)
			}
			if tt.want == 0 {
				return
			}

			s := c.Suggestions[0]
			if s.SuggestionType != SuggestionMissingImplementation {
				t.Errorf("SuggestionType = %q", s.SuggestionType)
			}
			if s.Priority != PriorityMedium {
				t.Errorf("Priority = %q", s.Priority)
			}
			if !strings.Contains(s.Description, "More ports than adapters") {
				t.Errorf("Description = %q", s.Description)
			}
		})
	}
}

func TestBuildCycleSuggestion(t *testing.T) {
	orders := graph.NewNode(graph.LayerDomain, graph.RoleDomainService, "OrderService", "shop::domain")
	billing := graph.NewNode(graph.LayerDomain, graph.RoleDomainService, "BillingService", "shop::domain")
	g := graph.NewBuilder().
		AddNodes(orders, billing).
		AddEdges(
			graph.NewEdge(orders.ID, billing.ID, graph.RelationshipDepends),
			graph.NewEdge(billing.ID, orders.ID, graph.RelationshipDepends)).
		Build()

	c := Build(g, Options{})
	if len(c.Suggestions) != 1 {
		t.Fatalf("len(Suggestions) = %d, want 1", len(c.Suggestions))
	}

	s := c.Suggestions[0]
	if s.SuggestionType != SuggestionArchitecturalViolation {
		t.Errorf("SuggestionType = %q, want %q", s.SuggestionType, SuggestionArchitecturalViolation)
	}
	if s.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want %q", s.Priority, PriorityHigh)
	}
	if !strings.Contains(s.Description, "OrderService") || !strings.Contains(s.Description, "BillingService") {
		t.Errorf("Description = %q, want both cycle members named", s.Description)
	}
	if s.Component == "" {
		t.Error("Component should name a cycle member")
	}
}

func TestBuildEmptyGraph(t *testing.T) {
	c := Build(graph.NewBuilder().Build(), Options{})

	if c.Architecture != "hexagonal" {
		t.Errorf("Architecture = %q, want %q", c.Architecture, "hexagonal")
	}
	if len(c.Components) != 0 || len(c.Relationships) != 0 || len(c.Suggestions) != 0 {
		t.Errorf("empty graph produced non-empty sections: %d/%d/%d",
			len(c.Components), len(c.Relationships), len(c.Suggestions))
	}
	if c.Metadata.TotalComponents != 0 || c.Metadata.TotalRelationships != 0 {
		t.Errorf("totals = %d/%d, want 0/0",
			c.Metadata.TotalComponents, c.Metadata.TotalRelationships)
	}
}

func TestBuildMetadata(t *testing.T) {
	c := Build(buildShopGraph(), Options{Version: "1.2.3"})

	if c.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", c.Version, "1.2.3")
	}
	if c.Metadata.ToolVersion != "1.2.3" {
		t.Errorf("ToolVersion = %q, want %q", c.Metadata.ToolVersion, "1.2.3")
	}
	if c.Metadata.TotalComponents != 3 {
		t.Errorf("TotalComponents = %d, want 3", c.Metadata.TotalComponents)
	}
	if c.Metadata.TotalRelationships != 2 {
		t.Errorf("TotalRelationships = %d, want 2", c.Metadata.TotalRelationships)
	}
	if c.Metadata.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %q, want %q", c.Metadata.SchemaVersion, SchemaVersion)
	}
	if _, err := time.Parse(time.RFC3339, c.Metadata.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt %q is not RFC3339: %v", c.Metadata.GeneratedAt, err)
	}
}

func TestBuildDefaultVersion(t *testing.T) {
	c := Build(buildShopGraph(), Options{})
	if c.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", c.Version, buildinfo.Version)
	}
}

func TestDefaultConstraints(t *testing.T) {
	rules := DefaultDependencyRules()
	if len(rules) != 2 {
		t.Fatalf("len(rules) = %d, want 2", len(rules))
	}
	if rules[0].FromLayer != "Domain" || rules[0].ToLayer != "Infrastructure" || rules[0].Allowed {
		t.Errorf("rules[0] = %+v, want Domain -> Infrastructure disallowed", rules[0])
	}

	boundaries := DefaultLayerBoundaries()
	if len(boundaries) != 2 {
		t.Fatalf("len(boundaries) = %d, want 2", len(boundaries))
	}
	if boundaries[0].Layer != "Domain" || len(boundaries[0].CanDependOn) != 0 {
		t.Errorf("boundaries[0] = %+v, want Domain with no dependencies", boundaries[0])
	}

	patterns := DefaultRequiredPatterns()
	found := false
	for _, p := range patterns {
		if p == "Ports declared as interfaces" {
			found = true
		}
	}
	if !found {
		t.Errorf("patterns = %v, missing interface rule", patterns)
	}
}

func TestMarshalContextShape(t *testing.T) {
	data, err := MarshalContext(Build(buildShopGraph(), Options{}))
	if err != nil {
		t.Fatalf("MarshalContext: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"architecture", "version", "components", "relationships", "constraints", "suggestions", "metadata"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
	if !strings.Contains(string(data), `"architecture": "hexagonal"`) {
		t.Error("document should be pretty-printed with two-space indent")
	}
}

func TestMarshalContextEmptySections(t *testing.T) {
	data, err := MarshalContext(Build(graph.NewBuilder().Build(), Options{}))
	if err != nil {
		t.Fatalf("MarshalContext: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"components": []`) {
		t.Error("empty components should marshal as [], not null")
	}
	if !strings.Contains(out, `"relationships": []`) {
		t.Error("empty relationships should marshal as [], not null")
	}
}

func TestWriteContextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	if err := WriteContextFile(Build(buildShopGraph(), Options{}), path); err != nil {
		t.Fatalf("WriteContextFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var c AIContext
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if len(c.Components) != 3 {
		t.Errorf("len(Components) = %d, want 3", len(c.Components))
	}
}
