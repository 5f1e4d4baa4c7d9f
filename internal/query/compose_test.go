// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"strings"
	"testing"

	"github.com/pdiddy/intel-engine/internal/persona"
)

func testProfile() persona.Profile {
	return persona.Profile{
		Name:           "devops_engineer",
		DisplayName:    "DevOps Engineer",
		Description:    "Tracks infrastructure and operations developments.",
		FocusAreas:     []string{"kubernetes", "terraform"},
		SearchPatterns: []string{"kubernetes cost optimization", "gitops workflows", "platform engineering", "incident tooling"},
		TopicCategories: map[string][]string{
			"infrastructure": {"iac"},
			"delivery":       {"ci/cd"},
			"observability":  {"tracing"},
			"security":       {"supply chain"},
		},
		SearchModifiers: map[string][]string{
			"recency": {"latest"},
			"depth":   {"deep dive"},
		},
		Instructions: persona.Instructions{
			PrimaryRole:    "infrastructure advisor",
			CoreObjectives: []string{"reduce cost", "improve reliability"},
			TechnicalDepth: "deep",
		},
	}
}

func TestComposeDeterministic(t *testing.T) {
	p := testProfile()
	areas := []string{"Kubernetes", "Cost optimization"}

	first, err := Compose(p, areas, "30d")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compose(p, areas, "30d")
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if again.PrimaryPrompt != first.PrimaryPrompt {
			t.Fatal("primary prompt differs between identical invocations")
		}
		if strings.Join(again.AlternativePrompts, "|") != strings.Join(first.AlternativePrompts, "|") {
			t.Fatal("alternative prompts differ between identical invocations")
		}
	}
}

func TestComposePrimaryPromptContent(t *testing.T) {
	q, err := Compose(testProfile(), []string{"Kubernetes", "Cost optimization"}, "7d")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	wantFragments := []string{
		"intelligence report for a DevOps Engineer about: Kubernetes, Cost optimization",
		"past week",
		"TECHNICAL DEPTH: deep",
		"TIME RANGE: Focus on developments from the last 7d",
		"## 📚 Knowledge Base Insights",
		"## 🌐 Latest Developments",
		"## 💡 Strategic Synthesis for DevOps Engineer",
		"- Focus on: reduce cost, improve reliability",
		"- Role context: infrastructure advisor",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(q.PrimaryPrompt, frag) {
			t.Errorf("primary prompt missing %q", frag)
		}
	}
}

func TestComposeSkipsAssistantRole(t *testing.T) {
	p := testProfile()
	p.Instructions.PrimaryRole = "You are a helpful assistant"

	q, err := Compose(p, []string{"Kubernetes"}, "30d")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if strings.Contains(q.PrimaryPrompt, "Role context:") {
		t.Error("generic assistant role should be omitted from guidance")
	}
}

func TestComposeMetadata(t *testing.T) {
	q, err := Compose(testProfile(), []string{"A1", "A2", "A3"}, "90d")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	md := q.Metadata
	if md.Persona != "devops_engineer" || md.PersonaDisplay != "DevOps Engineer" {
		t.Errorf("persona metadata wrong: %+v", md)
	}
	if md.FocusAreaCount != 3 || md.TimeRange != "90d" {
		t.Errorf("count/range metadata wrong: %+v", md)
	}
	if md.PatternCount != 4 || md.CategoryCount != 4 {
		t.Errorf("pattern/category metadata wrong: %+v", md)
	}
}

func TestAlternativesLadder(t *testing.T) {
	t.Run("pattern then modifier", func(t *testing.T) {
		alts := alternatives(testProfile(), []string{"Kubernetes"})
		if len(alts) != 2 {
			t.Fatalf("len = %d, want 2", len(alts))
		}
		if alts[0] != "kubernetes cost optimization" {
			t.Errorf("alts[0] = %q, want first search pattern", alts[0])
		}
		// Modifier classes are visited in sorted order: depth before recency.
		if alts[1] != "deep dive Kubernetes" {
			t.Errorf("alts[1] = %q, want modifier pairing", alts[1])
		}
	})

	t.Run("bare profile falls back to trend query", func(t *testing.T) {
		p := persona.Profile{Name: "bare", DisplayName: "Bare", FocusAreas: []string{"x"}}
		alts := alternatives(p, []string{"Quantum computing", "Cryptography"})
		if len(alts) == 0 || len(alts) > 2 {
			t.Fatalf("len = %d, want 1 or 2", len(alts))
		}
		for _, alt := range alts {
			if !strings.Contains(alt, "Quantum computing") {
				t.Errorf("fallback alternative %q should mention the primary area", alt)
			}
		}
	})

	t.Run("never exceeds two", func(t *testing.T) {
		alts := alternatives(testProfile(), []string{"A", "B", "C", "D"})
		if len(alts) > 2 {
			t.Fatalf("len = %d, want <= 2", len(alts))
		}
	})
}

func TestTimePhrase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7d", "past week"},
		{"30d", "past month"},
		{"90d", "past quarter"},
		{"6m", "past 6 months"},
		{"1y", "past year"},
		{"bogus", "recent period"},
	}
	for _, tt := range tests {
		if got := TimePhrase(tt.in); got != tt.want {
			t.Errorf("TimePhrase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
