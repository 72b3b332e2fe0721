package aictx

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/archscope/archscope/pkg/buildinfo"
	"github.com/archscope/archscope/pkg/graph"
)

// Architecture names the architectural pattern described by every context.
const Architecture = "hexagonal"

// SchemaVersion identifies the context document schema for consumers.
const SchemaVersion = "1.0.0"

// =============================================================================
// Context Document Model
// =============================================================================

// AIContext is a machine-readable description of an architecture graph,
// combining the components and relationships with the rules that govern
// them and advisory suggestions derived from analysis.
type AIContext struct {
	Architecture  string             `json:"architecture"`
	Version       string             `json:"version"`
	Components    []ComponentInfo    `json:"components"`
	Relationships []RelationshipInfo `json:"relationships"`
	Constraints   ConstraintSet      `json:"constraints"`
	Suggestions   []Suggestion       `json:"suggestions"`
	Metadata      ContextMetadata    `json:"metadata"`
}

// ComponentInfo describes a single component.
type ComponentInfo struct {
	TypeName     string   `json:"type_name"`
	Layer        string   `json:"layer"`
	Role         string   `json:"role"`
	ModulePath   string   `json:"module_path"`
	Purpose      string   `json:"purpose,omitempty"`
	Dependencies []string `json:"dependencies"`
}

// RelationshipInfo describes one edge with its advisory validation result.
type RelationshipInfo struct {
	From              string `json:"from"`
	To                string `json:"to"`
	RelationshipType  string `json:"relationship_type"`
	IsValid           bool   `json:"is_valid"`
	ValidationMessage string `json:"validation_message,omitempty"`
}

// ConstraintSet collects the architectural rules agents must enforce.
type ConstraintSet struct {
	DependencyRules   []DependencyRule   `json:"dependency_rules"`
	LayerBoundaries   []LayerBoundary    `json:"layer_boundaries"`
	NamingConventions []NamingConvention `json:"naming_conventions"`
	RequiredPatterns  []string           `json:"required_patterns"`
}

// DependencyRule states whether one layer may depend on another.
type DependencyRule struct {
	FromLayer string `json:"from_layer"`
	ToLayer   string `json:"to_layer"`
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason"`
}

// LayerBoundary describes a layer's allowed neighbors and purpose.
type LayerBoundary struct {
	Layer             string   `json:"layer"`
	CanDependOn       []string `json:"can_depend_on"`
	DependentsAllowed []string `json:"dependents_allowed"`
	Purpose           string   `json:"purpose"`
}

// NamingConvention documents a naming rule with an example.
type NamingConvention struct {
	AppliesTo string `json:"applies_to"`
	Pattern   string `json:"pattern"`
	Example   string `json:"example"`
}

// Suggestion is an advisory finding from architecture analysis.
type Suggestion struct {
	SuggestionType SuggestionType `json:"suggestion_type"`
	Component      string         `json:"component,omitempty"`
	Description    string         `json:"description"`
	Priority       Priority       `json:"priority"`
	CodeExample    string         `json:"code_example,omitempty"`
}

// SuggestionType classifies a suggestion.
type SuggestionType string

// Suggestion types.
const (
	SuggestionMissingImplementation  SuggestionType = "missing_implementation"
	SuggestionArchitecturalViolation SuggestionType = "architectural_violation"
	SuggestionImprovement            SuggestionType = "improvement"
	SuggestionBestPractice           SuggestionType = "best_practice"
	SuggestionPotentialIssue         SuggestionType = "potential_issue"
)

// Priority ranks how urgently a suggestion should be addressed.
type Priority string

// Priorities, lowest to highest.
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ContextMetadata stamps the export with provenance information.
type ContextMetadata struct {
	GeneratedAt        string `json:"generated_at"`
	ToolVersion        string `json:"tool_version"`
	TotalComponents    int    `json:"total_components"`
	TotalRelationships int    `json:"total_relationships"`
	SchemaVersion      string `json:"schema_version"`
}

// =============================================================================
// Options
// =============================================================================

// Options configures context generation. The zero value builds a context
// with the default hexagonal rule set.
type Options struct {
	// Version stamps the generating tool version into the metadata.
	// Empty uses the binary's build version.
	Version string

	// Rules overrides the default dependency rules. Nil keeps defaults.
	Rules []DependencyRule

	// Boundaries overrides the default layer boundaries. Nil keeps defaults.
	Boundaries []LayerBoundary

	// Conventions overrides the default naming conventions. Nil keeps defaults.
	Conventions []NamingConvention

	// RequiredPatterns overrides the default required patterns. Nil keeps defaults.
	RequiredPatterns []string
}

func (o *Options) setDefaults() {
	if o.Version == "" {
		o.Version = buildinfo.Version
	}
	if o.Rules == nil {
		o.Rules = DefaultDependencyRules()
	}
	if o.Boundaries == nil {
		o.Boundaries = DefaultLayerBoundaries()
	}
	if o.Conventions == nil {
		o.Conventions = DefaultNamingConventions()
	}
	if o.RequiredPatterns == nil {
		o.RequiredPatterns = DefaultRequiredPatterns()
	}
}

// =============================================================================
// Context Construction
// =============================================================================

// Build assembles the complete context for a graph. It is total: any
// graph, including an empty one, produces a valid context. Components are
// ordered by node id so repeated builds of the same graph differ only in
// their generation timestamp.
func Build(g *graph.Graph, opts Options) *AIContext {
	opts.setDefaults()

	components := buildComponents(g)
	relationships := buildRelationships(g, opts.Rules)

	return &AIContext{
		Architecture:  Architecture,
		Version:       opts.Version,
		Components:    components,
		Relationships: relationships,
		Constraints: ConstraintSet{
			DependencyRules:   opts.Rules,
			LayerBoundaries:   opts.Boundaries,
			NamingConventions: opts.Conventions,
			RequiredPatterns:  opts.RequiredPatterns,
		},
		Suggestions: generateSuggestions(g, components),
		Metadata: ContextMetadata{
			GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
			ToolVersion:        opts.Version,
			TotalComponents:    g.NodeCount(),
			TotalRelationships: g.EdgeCount(),
			SchemaVersion:      SchemaVersion,
		},
	}
}

func buildComponents(g *graph.Graph) []ComponentInfo {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		return cmp.Compare(a.ID.Value(), b.ID.Value())
	})

	components := make([]ComponentInfo, 0, len(nodes))
	for _, n := range nodes {
		deps := make([]string, 0)
		for _, e := range g.EdgesFrom(n.ID) {
			deps = append(deps, e.Target.String())
		}

		components = append(components, ComponentInfo{
			TypeName:     n.TypeName,
			Layer:        n.Layer.String(),
			Role:         n.Role.String(),
			ModulePath:   n.ModulePath,
			Purpose:      n.Purpose,
			Dependencies: deps,
		})
	}
	return components
}

func buildRelationships(g *graph.Graph, rules []DependencyRule) []RelationshipInfo {
	edges := g.Edges()
	relationships := make([]RelationshipInfo, 0, len(edges))
	for _, e := range edges {
		valid := validateRelationship(g, rules, e)
		info := RelationshipInfo{
			From:             e.Source.String(),
			To:               e.Target.String(),
			RelationshipType: e.Relationship.String(),
			IsValid:          valid,
		}
		if !valid {
			info.ValidationMessage = "Violates layer dependency rules"
		}
		relationships = append(relationships, info)
	}
	return relationships
}

// validateRelationship checks an edge against the dependency rules. The
// check is advisory: edges whose endpoints are missing from the graph
// (dangling targets are legal) pass, and only an explicit disallow rule
// for the source/target layer pair fails.
func validateRelationship(g *graph.Graph, rules []DependencyRule, e graph.Edge) bool {
	src, ok := g.Node(e.Source)
	if !ok {
		return true
	}
	dst, ok := g.Node(e.Target)
	if !ok {
		return true
	}

	for _, rule := range rules {
		if !rule.Allowed && rule.FromLayer == src.Layer.String() && rule.ToLayer == dst.Layer.String() {
			return false
		}
	}
	return true
}

// generateSuggestions derives advisory findings from the graph. Two
// heuristics: more port components than adapter components hints at ports
// without implementations, and dependency cycles among components are
// flagged as violations.
func generateSuggestions(g *graph.Graph, components []ComponentInfo) []Suggestion {
	suggestions := make([]Suggestion, 0)

	ports := 0
	adapters := 0
	for _, c := range components {
		switch c.Layer {
		case graph.LayerPort.String():
			ports++
		case graph.LayerAdapter.String():
			adapters++
		}
	}

	if ports > adapters {
		suggestions = append(suggestions, Suggestion{
			SuggestionType: SuggestionMissingImplementation,
			Description:    "More ports than adapters - some ports may need implementations",
			Priority:       PriorityMedium,
		})
	}

	for _, cycle := range graph.FindCycles(g) {
		names := make([]string, 0, len(cycle))
		for _, id := range cycle {
			if n, ok := g.Node(id); ok {
				names = append(names, n.TypeName)
			}
		}
		suggestions = append(suggestions, Suggestion{
			SuggestionType: SuggestionArchitecturalViolation,
			Component:      names[0],
			Description:    "Dependency cycle: " + strings.Join(names, " -> "),
			Priority:       PriorityHigh,
		})
	}

	return suggestions
}

// =============================================================================
// Default Rule Set
// =============================================================================

// DefaultDependencyRules returns the hexagonal layer dependency rules.
func DefaultDependencyRules() []DependencyRule {
	return []DependencyRule{
		{
			FromLayer: "Domain",
			ToLayer:   "Infrastructure",
			Allowed:   false,
			Reason:    "Domain must not depend on infrastructure",
		},
		{
			FromLayer: "Application",
			ToLayer:   "Domain",
			Allowed:   true,
			Reason:    "Application coordinates domain logic",
		},
	}
}

// DefaultLayerBoundaries returns the hexagonal layer boundary definitions.
func DefaultLayerBoundaries() []LayerBoundary {
	return []LayerBoundary{
		{
			Layer:             "Domain",
			CanDependOn:       []string{},
			DependentsAllowed: []string{"Ports", "Application"},
			Purpose:           "Pure business logic with zero dependencies",
		},
		{
			Layer:             "Ports",
			CanDependOn:       []string{"Domain"},
			DependentsAllowed: []string{"Adapters", "Application"},
			Purpose:           "Interfaces defining what application needs",
		},
	}
}

// DefaultNamingConventions returns the recommended naming rules.
func DefaultNamingConventions() []NamingConvention {
	return []NamingConvention{
		{
			AppliesTo: "Repository ports",
			Pattern:   "*Repository interface",
			Example:   "type UserRepository interface",
		},
		{
			AppliesTo: "Directives",
			Pattern:   "*Directive struct",
			Example:   "type CreateUserDirective struct",
		},
	}
}

// DefaultRequiredPatterns returns the structural patterns agents must keep.
func DefaultRequiredPatterns() []string {
	return []string{
		"One component per file",
		"Ports declared as interfaces",
		"Adapters depend inward only",
	}
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalContext serializes a context to pretty-printed JSON bytes.
func MarshalContext(c *AIContext) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode context: %w", err)
	}
	return data, nil
}

// WriteContextFile writes a context to a JSON file.
func WriteContextFile(c *AIContext, path string) error {
	data, err := MarshalContext(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
