// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/intel-engine/internal/persona"
)

// briefLines caps the daily brief at its headline count.
const briefLines = 3

// Newsletter renders the raw search text as a numbered-digest
// newsletter. It operates on raw lines, independent of section
// extraction, and is total over arbitrary input including empty text.
func Newsletter(text string, profile persona.Profile, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 📰 %s Newsletter\n\n", profile.DisplayName)
	fmt.Fprintf(&b, "*%s*\n\n", now.UTC().Format("January 2, 2006"))

	b.WriteString("## Key Updates\n\n")
	lines := contentLines(text, 0)
	if len(lines) == 0 {
		b.WriteString("No updates available for this edition.\n")
	}
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}

	b.WriteString("\n## Action Items\n\n")
	b.WriteString("- Review the updates above and flag items relevant to your current work\n")
	b.WriteString("- Share notable developments with your team\n")
	b.WriteString("- Schedule follow-up research on high-impact topics\n")

	fmt.Fprintf(&b, "\n---\n*Prepared for %s*\n", profile.DisplayName)
	return b.String()
}

// DailyBrief renders at most the first three non-empty lines of the raw
// search text as a numbered morning brief. Total over arbitrary input.
func DailyBrief(text string, profile persona.Profile, focusAreas []string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# ☀️ Daily Brief: %s\n\n", profile.DisplayName)
	fmt.Fprintf(&b, "*%s*\n\n", now.UTC().Format("Monday, January 2, 2006"))

	lines := contentLines(text, briefLines)
	if len(lines) == 0 {
		b.WriteString("Nothing new to report today.\n")
	}
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}

	b.WriteString("\n**Today:** pick one item above and dig one level deeper.\n")
	fmt.Fprintf(&b, "\n---\n*Focus areas: %s*\n", strings.Join(focusAreas, ", "))
	return b.String()
}

// contentLines returns the non-empty lines of text, trimmed, capped at
// max when max is positive.
func contentLines(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
