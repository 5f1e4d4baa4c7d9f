// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/intel-engine/internal/persona"
	"github.com/pdiddy/intel-engine/pkg/types"
)

// executiveExcerptLen bounds the synthesis excerpt in the header.
const executiveExcerptLen = 300

// Format renders the full intelligence report from accumulated stream
// text. Empty or whitespace-only text yields the diagnostic template
// instead; this is a terminal branch, not an error. Format is total and
// never fails.
func Format(result types.StreamResult, profile persona.Profile, focusAreas []string, now time.Time) types.FormattedReport {
	footer := types.ReportFooter{
		Persona:     profile.Name,
		GeneratedAt: now.UTC(),
		ReportID:    uuid.NewString()[:8],
	}

	if strings.TrimSpace(result.Text) == "" {
		return types.FormattedReport{
			Body:     diagnosticBody(result, profile, focusAreas),
			Sections: map[string]string{},
			Footer:   footer,
		}
	}

	sections := extractSections(result.Text)

	var b strings.Builder
	fmt.Fprintf(&b, "# 🔄 Intelligence Report: %s\n\n", profile.DisplayName)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", footer.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	if synthesis := sections[sectionSynthesis]; synthesis != "" {
		b.WriteString("## 📊 Executive Summary\n\n")
		b.WriteString(excerpt(synthesis, executiveExcerptLen))
		b.WriteString("\n\n")
	}
	if knowledge := sections[sectionKnowledge]; knowledge != "" {
		b.WriteString("## 📚 Knowledge Base Insights\n\n")
		b.WriteString(knowledge)
		b.WriteString("\n\n")
	}
	if web := sections[sectionWeb]; web != "" {
		b.WriteString("## 🌐 Latest Developments\n\n")
		b.WriteString(web)
		b.WriteString("\n\n")
	}
	if synthesis := sections[sectionSynthesis]; synthesis != "" {
		fmt.Fprintf(&b, "## 💡 Strategic Synthesis for %s\n\n", profile.DisplayName)
		b.WriteString(synthesis)
		b.WriteString("\n\n")
	}
	if other := sections[sectionOther]; other != "" {
		b.WriteString("## 📄 Additional Information\n\n")
		b.WriteString(other)
		b.WriteString("\n\n")
	}

	attribution := Attribution(result)
	b.WriteString("## 🔗 Sources\n\n")
	for _, line := range attribution {
		b.WriteString("- " + line + "\n")
	}
	fmt.Fprintf(&b, "- Processing mode: streaming (%d chunks, %d with content)\n",
		result.ChunkCount, result.ContentChunkCount)

	fmt.Fprintf(&b, "\n---\n*Report %s · persona %s · generated %s*\n",
		footer.ReportID, footer.Persona, footer.GeneratedAt.Format(time.RFC3339))

	return types.FormattedReport{
		Body:        b.String(),
		Sections:    sections,
		Attribution: attribution,
		Footer:      footer,
	}
}

// Attribution derives the source lines from which retrieval tools the
// stream actually exercised. A stream that produced content is credited
// to both tools, since the prompt mandates using both.
func Attribution(result types.StreamResult) []string {
	if result.ContentChunkCount == 0 || strings.TrimSpace(result.Text) == "" {
		return []string{"No sources consulted (empty response)"}
	}
	return []string{
		"knowledge_base: curated internal knowledge",
		"web_search: live web results",
	}
}

// ToolsUsed lists the canonical tool tokens for the metadata record.
func ToolsUsed(result types.StreamResult) []string {
	if result.ContentChunkCount == 0 || strings.TrimSpace(result.Text) == "" {
		return nil
	}
	return []string{"knowledge_base", "web_search"}
}

// diagnosticBody is the fixed template rendered when streaming produced
// no usable text. It restates the request verbatim so the reader can
// retry it, plus generic troubleshooting hints.
func diagnosticBody(result types.StreamResult, profile persona.Profile, focusAreas []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# ⚠️ Intelligence Report: %s\n\n", profile.DisplayName)
	b.WriteString("The search completed without producing any content.\n\n")
	fmt.Fprintf(&b, "**Requested focus areas:** %s\n\n", strings.Join(focusAreas, ", "))

	b.WriteString("**Diagnostics:**\n")
	fmt.Fprintf(&b, "- Chunks received: %d (%d with content)\n", result.ChunkCount, result.ContentChunkCount)
	fmt.Fprintf(&b, "- Elapsed: %.1fs\n", result.ElapsedSeconds)
	if result.TimedOut {
		b.WriteString("- The stream hit its deadline before completing\n")
	}
	if result.Err != "" {
		fmt.Fprintf(&b, "- Upstream error: %s\n", result.Err)
	}

	b.WriteString("\n**Troubleshooting:**\n")
	b.WriteString("- Verify the agent endpoint is reachable and responding\n")
	b.WriteString("- Try a longer timeout or a narrower set of focus areas\n")
	b.WriteString("- Re-run with the same correlation id to trace the request\n")
	return b.String()
}

// excerpt returns the first n characters of s on a rune boundary, with
// an ellipsis when truncated.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
