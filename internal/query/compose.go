// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query turns a persona profile and a validated request into the
// prompt material sent to the agent. Composition is deterministic:
// identical inputs always yield byte-identical prompts.
package query

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/pdiddy/intel-engine/internal/persona"
	"github.com/pdiddy/intel-engine/pkg/types"
)

// timePhrases maps canonical time-range tokens to the human phrase
// embedded in the web-search instruction.
var timePhrases = map[string]string{
	"7d":  "past week",
	"30d": "past month",
	"90d": "past quarter",
	"6m":  "past 6 months",
	"1y":  "past year",
}

// TimePhrase returns the human-readable phrase for a canonical
// time-range token, or "recent period" for anything else.
func TimePhrase(timeRange string) string {
	if phrase, ok := timePhrases[timeRange]; ok {
		return phrase
	}
	return "recent period"
}

// primaryTmpl is the five-part primary prompt: task statement, two-step
// search instruction, persona guidance block, technical-depth line, and
// the required three-section response skeleton.
var primaryTmpl = template.Must(template.New("primary").Parse(`I need a comprehensive intelligence report for a {{.Display}} about: {{.Focus}}

SEARCH INSTRUCTIONS:
1. First, search your knowledge base for established information, best practices, and proven methodologies about these topics
2. Then, search the web for the latest developments, news, and trends from the {{.TimePhrase}}
3. Combine both sources to provide a complete picture

PERSONA FOCUS:
{{.Guidance}}

TECHNICAL DEPTH: {{.Depth}}

TIME RANGE: Focus on developments from the last {{.TimeRange}} for web search.

RESPONSE STRUCTURE:
Please organize your response as follows:

## 📚 Knowledge Base Insights
[Established information from your knowledge base - proven practices, foundational concepts]

## 🌐 Latest Developments
[Recent information from web search - news, trends, announcements from the {{.TimePhrase}}]

## 💡 Strategic Synthesis for {{.Display}}
[Combined insights, actionable recommendations, and next steps specifically relevant to {{.Display}}]

IMPORTANT: Use BOTH your knowledge base search AND web search capabilities. Clearly distinguish between established knowledge and recent developments.`))

// Compose builds the primary prompt, up to two alternative prompts, and
// the query metadata for one search invocation.
func Compose(p persona.Profile, focusAreas []string, timeRange string) (types.ComposedQuery, error) {
	data := struct {
		Display    string
		Focus      string
		TimePhrase string
		Guidance   string
		Depth      string
		TimeRange  string
	}{
		Display:    p.DisplayName,
		Focus:      strings.Join(focusAreas, ", "),
		TimePhrase: TimePhrase(timeRange),
		Guidance:   guidanceBlock(p),
		Depth:      p.TechnicalDepth(),
		TimeRange:  timeRange,
	}

	var buf bytes.Buffer
	if err := primaryTmpl.Execute(&buf, data); err != nil {
		return types.ComposedQuery{}, fmt.Errorf("rendering primary prompt: %w", err)
	}

	return types.ComposedQuery{
		PrimaryPrompt:      buf.String(),
		AlternativePrompts: alternatives(p, focusAreas),
		Metadata: types.QueryMetadata{
			Persona:        p.Name,
			PersonaDisplay: p.DisplayName,
			FocusAreaCount: len(focusAreas),
			TimeRange:      timeRange,
			PatternCount:   len(p.SearchPatterns),
			CategoryCount:  len(p.TopicCategories),
		},
	}, nil
}

// guidanceBlock renders the persona guidance lines in fixed order:
// description, core objectives, primary role (unless it is generic
// assistant boilerplate), top three search patterns, top three topic
// category names. Absent fields are omitted entirely.
func guidanceBlock(p persona.Profile) string {
	var lines []string

	if p.Description != "" {
		lines = append(lines, "- "+p.Description)
	}
	if len(p.Instructions.CoreObjectives) > 0 {
		lines = append(lines, "- Focus on: "+strings.Join(p.Instructions.CoreObjectives, ", "))
	}
	if role := p.Instructions.PrimaryRole; role != "" && !strings.Contains(strings.ToLower(role), "assistant") {
		lines = append(lines, "- Role context: "+role)
	}
	if len(p.SearchPatterns) > 0 {
		lines = append(lines, "- Key search areas: "+strings.Join(topN(p.SearchPatterns, 3), ", "))
	}
	if len(p.TopicCategories) > 0 {
		lines = append(lines, "- Topic categories: "+strings.Join(topN(sortedKeys(p.TopicCategories), 3), ", "))
	}

	if len(lines) == 0 {
		return fmt.Sprintf("Provide comprehensive information relevant to %s.", p.DisplayName)
	}
	return strings.Join(lines, "\n")
}

// alternatives derives at most two follow-up prompts: the persona's
// first search pattern verbatim, then a modifier+primary-area pairing,
// finally a generic trend query over the first three focus areas.
func alternatives(p persona.Profile, focusAreas []string) []string {
	var alts []string

	if len(p.SearchPatterns) > 0 {
		alts = append(alts, p.SearchPatterns[0])
	}

	if len(p.SearchModifiers) > 0 && len(focusAreas) > 0 {
		primary := focusAreas[0]
		for _, class := range sortedKeys(p.SearchModifiers) {
			if len(alts) >= 2 {
				break
			}
			if modifiers := p.SearchModifiers[class]; len(modifiers) > 0 {
				alts = append(alts, modifiers[0]+" "+primary)
			}
		}
	}

	if len(alts) == 0 && len(focusAreas) > 1 {
		alts = append(alts, fmt.Sprintf("Latest developments in %s for %s", focusAreas[0], p.DisplayName))
	}
	if len(alts) < 2 {
		alts = append(alts, "Current trends and innovations in "+strings.Join(topN(focusAreas, 3), ", "))
	}

	if len(alts) > 2 {
		alts = alts[:2]
	}
	return alts
}

func topN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// sortedKeys returns map keys in sorted order so composition stays
// deterministic across runs.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
