// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persona

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `personas:
  site_reliability:
    display_name: Site Reliability Engineer
    description: Keeps production healthy.
    focus_areas:
      - incident response
      - observability
    search_patterns:
      - SRE best practices
    instructions:
      primary_role: reliability advisor
      core_objectives:
        - reduce toil
      technical_depth: deep
`

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, validConfig)

	var warnings bytes.Buffer
	r := Load(path, &warnings)

	if warnings.Len() != 0 {
		t.Fatalf("unexpected warnings: %s", warnings.String())
	}
	if r.Source() != "file" {
		t.Fatalf("source = %q, want file", r.Source())
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}

	p, err := r.Get("site_reliability")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != "site_reliability" {
		t.Errorf("Name = %q, want site_reliability", p.Name)
	}
	if p.DisplayName != "Site Reliability Engineer" {
		t.Errorf("DisplayName = %q", p.DisplayName)
	}
	if p.TechnicalDepth() != "deep" {
		t.Errorf("TechnicalDepth = %q, want deep", p.TechnicalDepth())
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	var warnings bytes.Buffer
	r := Load(filepath.Join(t.TempDir(), "nope.yaml"), &warnings)

	if r.Source() != "builtin" {
		t.Fatalf("source = %q, want builtin", r.Source())
	}
	if r.Len() != 5 {
		t.Fatalf("len = %d, want 5 built-in profiles", r.Len())
	}
	if !strings.Contains(warnings.String(), "warning:") {
		t.Errorf("expected a warning, got %q", warnings.String())
	}

	for _, name := range []string{"devops_engineer", "software_engineer", "ai_engineer", "product_owner", "product_manager"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("built-in %s missing: %v", name, err)
		}
	}
}

func TestLoadMalformedYAMLFallsBack(t *testing.T) {
	path := writeConfig(t, "personas: [not a map")

	var warnings bytes.Buffer
	r := Load(path, &warnings)

	if r.Source() != "builtin" {
		t.Fatalf("source = %q, want builtin", r.Source())
	}
	if warnings.Len() == 0 {
		t.Error("expected a parse warning")
	}
}

func TestGetUnknown(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "nope.yaml"), new(bytes.Buffer))

	_, err := r.Get("astronaut")
	if err == nil {
		t.Fatal("expected error for unknown persona")
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Errorf("error should list available personas, got %q", err.Error())
	}
}

func TestReload(t *testing.T) {
	path := writeConfig(t, validConfig)
	r := Load(path, new(bytes.Buffer))
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}

	extra := validConfig + `  platform_engineer:
    display_name: Platform Engineer
    focus_areas:
      - internal platforms
`
	if err := os.WriteFile(path, []byte(extra), 0o644); err != nil {
		t.Fatal(err)
	}

	before, after := r.Reload(new(bytes.Buffer))
	if before != 1 || after != 2 {
		t.Fatalf("Reload = (%d, %d), want (1, 2)", before, after)
	}
	if _, err := r.Get("platform_engineer"); err != nil {
		t.Errorf("new profile missing after reload: %v", err)
	}
}

func TestReloadBrokenFileFallsBack(t *testing.T) {
	path := writeConfig(t, validConfig)
	r := Load(path, new(bytes.Buffer))

	if err := os.WriteFile(path, []byte("personas: {broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, after := r.Reload(new(bytes.Buffer))
	if after != 5 {
		t.Fatalf("after = %d, want 5 built-ins", after)
	}
	if r.Source() != "builtin" {
		t.Errorf("source = %q, want builtin", r.Source())
	}
}

func TestBuiltinProfilesAreValid(t *testing.T) {
	for _, p := range builtinProfiles() {
		if err := p.Validate(); err != nil {
			t.Errorf("builtin %s invalid: %v", p.Name, err)
		}
		if len(p.FocusAreas) == 0 {
			t.Errorf("builtin %s has no focus areas", p.Name)
		}
		if len(p.SearchPatterns) == 0 {
			t.Errorf("builtin %s has no search patterns", p.Name)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "nope.yaml"), new(bytes.Buffer))
	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "personas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
