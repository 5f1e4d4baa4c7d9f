// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package persona loads and serves the named persona profiles that shape
// search focus, prompt vocabulary, and report style. Profiles are loaded
// once at startup from a YAML file; any read or parse failure falls back
// to the built-in set so loading never aborts the process. The registry
// is immutable after load except for an explicit atomic reload.
package persona

import (
	"fmt"
	"strings"
)

// Profile describes one persona: its identity, the material that shapes
// query composition, and its report rendering preferences.
type Profile struct {
	// Name is the unique registry key (e.g. "devops_engineer").
	Name string `yaml:"-"`

	// DisplayName is the human-readable persona name. Required.
	DisplayName string `yaml:"display_name"`

	// Description is a one-line summary of the persona's search intent.
	Description string `yaml:"description"`

	// FocusAreas are the default topics, in relevance order. Required.
	FocusAreas []string `yaml:"focus_areas"`

	// SearchPatterns are example query strings, in preference order.
	SearchPatterns []string `yaml:"search_patterns"`

	// TopicCategories groups topic strings by category name.
	TopicCategories map[string][]string `yaml:"topic_categories"`

	// SearchModifiers groups query modifier strings by modifier class.
	SearchModifiers map[string][]string `yaml:"search_modifiers"`

	// OutputFormat tags the report structure and style.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Instructions hold the persona's prompt guidance.
	Instructions Instructions `yaml:"instructions"`
}

// OutputFormat tags a persona's report rendering preferences.
type OutputFormat struct {
	Structure string `yaml:"structure"`
	Style     string `yaml:"style"`
}

// Instructions hold the guidance embedded into composed prompts.
type Instructions struct {
	PrimaryRole    string   `yaml:"primary_role"`
	CoreObjectives []string `yaml:"core_objectives"`
	TechnicalDepth string   `yaml:"technical_depth"`
}

// Validate checks the profile invariants: a non-empty display name and at
// least one focus area.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("persona %q: missing display_name", p.Name)
	}
	if len(p.FocusAreas) == 0 {
		return fmt.Errorf("persona %q: no focus_areas defined", p.Name)
	}
	return nil
}

// TechnicalDepth returns the configured depth or "balanced" when unset.
func (p Profile) TechnicalDepth() string {
	if p.Instructions.TechnicalDepth == "" {
		return "balanced"
	}
	return p.Instructions.TechnicalDepth
}

// DefaultFocusAreas returns the first n configured focus areas, used when
// a request supplies none (or none survive cleaning).
func (p Profile) DefaultFocusAreas(n int) []string {
	if n > len(p.FocusAreas) {
		n = len(p.FocusAreas)
	}
	out := make([]string, n)
	copy(out, p.FocusAreas[:n])
	return out
}
