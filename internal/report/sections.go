// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the final user-facing artifacts: the full
// intelligence report plus the compact newsletter and daily-brief
// transforms. Section detection is heuristic line scanning, isolated
// here so the formatting layout can be tested independently of the
// exact pattern set.
package report

import (
	"strings"
)

// Canonical section names produced by extractSections.
const (
	sectionKnowledge = "knowledge"
	sectionWeb       = "web"
	sectionSynthesis = "synthesis"
	sectionOther     = "other"
)

// sectionLabels maps case-insensitive heading substrings to canonical
// section names. Checked in declaration order against the heading text
// with leading glyphs stripped.
var sectionLabels = []struct {
	substr string
	name   string
}{
	{"knowledge base", sectionKnowledge},
	{"latest developments", sectionWeb},
	{"web search", sectionWeb},
	{"recent developments", sectionWeb},
	{"synthesis", sectionSynthesis},
	{"strategic", sectionSynthesis},
	{"recommendations", sectionSynthesis},
}

// extractSections scans text for markdown headings matching the known
// section labels and captures each section's body up to the next
// heading. Text before the first recognized heading, and text under
// unrecognized headings, accumulates into "other". When nothing matches
// at all the entire body becomes the single "other" section.
func extractSections(text string) map[string]string {
	sections := map[string]string{}
	lines := strings.Split(text, "\n")

	current := sectionOther
	var body []string
	flush := func() {
		chunk := strings.TrimSpace(strings.Join(body, "\n"))
		if chunk != "" {
			if prev := sections[current]; prev != "" {
				chunk = prev + "\n\n" + chunk
			}
			sections[current] = chunk
		}
		body = body[:0]
	}

	for _, line := range lines {
		if name, ok := classifyHeading(line); ok {
			flush()
			current = name
			if name == sectionOther {
				// Unrecognized heading: keep its text with its body.
				body = append(body, line)
			}
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// classifyHeading reports whether line is a heading for one of the
// known sections. Headings are markdown-style (#-prefixed); emoji and
// other glyphs between the hashes and the label are tolerated.
func classifyHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	label := strings.ToLower(strings.TrimLeft(trimmed, "# \t"))
	for _, candidate := range sectionLabels {
		if strings.Contains(label, candidate.substr) {
			return candidate.name, true
		}
	}
	return sectionOther, true
}
