// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores a completed intelligence report against five
// weighted heuristic criteria. Scoring is a total function over the
// report text: it never fails, never performs I/O, and treats missing
// metadata as empty. The score is informational and never blocks report
// delivery.
package quality

import (
	"regexp"
	"strings"

	"github.com/pdiddy/intel-engine/pkg/types"
)

// Criterion weights. They must sum to 1 so the overall score stays in [0,1].
const (
	weightCompleteness = 0.30
	weightRelevance    = 0.25
	weightReadability  = 0.20
	weightAttribution  = 0.15
	weightActionable   = 0.10
)

// Remediation thresholds per criterion.
const (
	thresholdCompleteness = 0.7
	thresholdRelevance    = 0.6
	thresholdReadability  = 0.7
	thresholdAttribution  = 0.5
	thresholdActionable   = 0.6
)

// personaKeywords holds the fixed relevance vocabulary per persona.
// Personas without an entry score the neutral 0.5.
var personaKeywords = map[string][]string{
	"devops_engineer":   {"infrastructure", "deployment", "ops", "scaling", "cost"},
	"software_engineer": {"api", "framework", "development", "code", "integration"},
	"ai_engineer":       {"model", "research", "training", "architecture", "neural"},
	"product_owner":     {"product", "feature", "user", "market", "roadmap"},
	"product_manager":   {"business", "strategy", "revenue", "competitive", "market"},
}

var (
	headingPattern      = regexp.MustCompile(`(?m)^#{1,6}\s`)
	bulletPattern       = regexp.MustCompile(`(?m)^\s*[-*•]\s`)
	longSentencePattern = regexp.MustCompile(`[^.!?\n]{200,}`)
)

// Analyze scores text for the given persona. metadata carries optional
// context from the search pipeline; only the "sources_used" key is
// consulted, and a nil or malformed map is equivalent to an empty one.
func Analyze(text, persona string, metadata map[string]any) types.QualityScore {
	lower := strings.ToLower(text)

	score := types.QualityScore{
		Completeness:      completeness(text, lower),
		Relevance:         relevance(lower, persona),
		Readability:       readability(text, lower),
		SourceAttribution: sourceAttribution(lower, metadata),
		Actionability:     actionability(lower),
	}

	score.Overall = score.Completeness*weightCompleteness +
		score.Relevance*weightRelevance +
		score.Readability*weightReadability +
		score.SourceAttribution*weightAttribution +
		score.Actionability*weightActionable
	score.Grade = grade(score.Overall)
	score.Remediations = remediations(score)

	return score
}

// completeness checks that both halves of the report mandate (knowledge
// base plus latest developments) are present alongside structure, bulk,
// and a synthesis.
func completeness(text, lower string) float64 {
	return ratio(
		strings.Contains(lower, "knowledge base"),
		strings.Contains(lower, "latest developments"),
		headingPattern.MatchString(text),
		len(text) > 500,
		containsAny(lower, "synthesis", "recommend", "suggest"),
	)
}

// relevance is the fraction of the persona's fixed keyword set found in
// the text, or 0.5 when the persona carries no keyword set.
func relevance(lower, persona string) float64 {
	keywords, ok := personaKeywords[persona]
	if !ok || len(keywords) == 0 {
		return 0.5
	}
	found := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

func readability(text, lower string) float64 {
	return ratio(
		headingPattern.MatchString(text),
		bulletPattern.MatchString(text),
		strings.Count(text, "\n\n") > 2,
		!longSentencePattern.MatchString(text),
		containsAny(lower, "📚", "🌐", "💡", "🔄", "📊"),
	)
}

func sourceAttribution(lower string, metadata map[string]any) float64 {
	sourcesSummary := false
	if metadata != nil {
		if v, ok := metadata["sources_used"].(string); ok && v != "" {
			sourcesSummary = true
		}
	}
	return ratio(
		containsAny(lower, "## sources", "# sources", "sources:"),
		containsAny(lower, "web_search", "knowledge_base", "web search", "knowledge base search"),
		sourcesSummary,
	)
}

func actionability(lower string) float64 {
	return ratio(
		containsAny(lower, "recommend", "suggest", "should"),
		containsAny(lower, "next step", "action item", "follow up", "follow-up"),
		containsAny(lower, "strategy", "approach", "plan"),
		containsAny(lower, "how to", "tutorial", "guide"),
	)
}

func grade(overall float64) string {
	switch {
	case overall >= 0.9:
		return "A+"
	case overall >= 0.8:
		return "A"
	case overall >= 0.7:
		return "B+"
	case overall >= 0.6:
		return "B"
	case overall >= 0.5:
		return "C+"
	case overall >= 0.4:
		return "C"
	default:
		return "D"
	}
}

func remediations(s types.QualityScore) []string {
	var out []string
	if s.Completeness < thresholdCompleteness {
		out = append(out, "Include both knowledge base insights and latest developments sections")
	}
	if s.Relevance < thresholdRelevance {
		out = append(out, "Align content more closely with the persona's focus areas")
	}
	if s.Readability < thresholdReadability {
		out = append(out, "Add headings, bullet points, and paragraph breaks for readability")
	}
	if s.SourceAttribution < thresholdAttribution {
		out = append(out, "Attribute findings to their sources (knowledge base vs. web search)")
	}
	if s.Actionability < thresholdActionable {
		out = append(out, "Add concrete recommendations and next steps")
	}
	return out
}

// ratio maps a set of boolean indicators to the fraction satisfied.
func ratio(indicators ...bool) float64 {
	hit := 0
	for _, ok := range indicators {
		if ok {
			hit++
		}
	}
	return float64(hit) / float64(len(indicators))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
