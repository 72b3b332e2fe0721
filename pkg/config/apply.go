package config

import (
	"github.com/archscope/archscope/pkg/aictx"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/viz"
)

// VizStyle materializes the configured style on top of the default
// palette. Color keys that are not layer names are skipped.
func (c *Config) VizStyle() viz.Style {
	style := viz.DefaultStyle()
	if c.Style.Shape != "" {
		style.Shape = c.Style.Shape
	}
	for name, color := range c.Style.Colors {
		if layer := graph.Layer(name); graph.ValidLayers[layer] {
			style.Colors[layer] = color
		}
	}
	return style
}

// DependencyRules converts the configured rules for the AI context.
// Returns nil when no rules are configured so the built-in defaults apply.
func (c *Config) DependencyRules() []aictx.DependencyRule {
	if len(c.Rules.Dependency) == 0 {
		return nil
	}

	rules := make([]aictx.DependencyRule, 0, len(c.Rules.Dependency))
	for _, r := range c.Rules.Dependency {
		rules = append(rules, aictx.DependencyRule{
			FromLayer: r.From,
			ToLayer:   r.To,
			Allowed:   r.Allowed,
			Reason:    r.Reason,
		})
	}
	return rules
}

// DocPaths returns the configured pack document paths, or nil so the
// built-in defaults apply.
func (c *Config) DocPaths() []string {
	if len(c.Docs.Paths) == 0 {
		return nil
	}
	return append([]string(nil), c.Docs.Paths...)
}
