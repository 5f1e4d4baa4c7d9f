// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/intel-engine/internal/knowledge"
	"github.com/pdiddy/intel-engine/internal/stream"
)

// LocalAgent answers prompts from the curated knowledge store without
// network access. It renders retrieved notes into the same sectioned
// markdown shape a remote agent would produce, so the downstream
// pipeline is identical online and offline.
type LocalAgent struct {
	store      *knowledge.Store
	maxResults int
}

// NewLocalAgent builds an offline agent over the given store.
func NewLocalAgent(store *knowledge.Store, maxResults int) *LocalAgent {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &LocalAgent{store: store, maxResults: maxResults}
}

// Submit retrieves notes matching the prompt's topic line and streams a
// sectioned response one paragraph per chunk.
func (a *LocalAgent) Submit(ctx context.Context, prompt string) (stream.Source, error) {
	notes, err := a.store.Retrieve(ctx, topicLine(prompt), a.maxResults)
	if err != nil {
		return nil, fmt.Errorf("retrieving notes: %w", err)
	}

	var chunks []string
	chunks = append(chunks, "## 📚 Knowledge Base Insights\n\n")
	if len(notes) == 0 {
		chunks = append(chunks, "No curated notes matched this topic.\n\n")
	}
	for _, note := range notes {
		chunk := fmt.Sprintf("**%s**\n\n%s\n\n", note.Topic, note.Content)
		if note.SourceURL != "" {
			chunk += fmt.Sprintf("Source: %s\n\n", note.SourceURL)
		}
		chunks = append(chunks, chunk)
	}

	chunks = append(chunks,
		"## 🌐 Latest Developments\n\n",
		"Live web search is unavailable in offline mode; the findings above reflect the curated knowledge base only.\n\n",
		"## 💡 Strategic Synthesis\n\n",
		fmt.Sprintf("Reviewed %d curated notes. We recommend validating these findings against live sources once connectivity is restored.\n", len(notes)),
	)

	return &sliceSource{chunks: chunks}, nil
}

// topicLine pulls the focus-area tail of the composed prompt's first
// line, which reads "... about: <areas>". A prompt without that marker
// is searched verbatim.
func topicLine(prompt string) string {
	first, _, _ := strings.Cut(prompt, "\n")
	if _, topics, ok := strings.Cut(first, "about:"); ok {
		return strings.TrimSpace(topics)
	}
	return strings.TrimSpace(first)
}

// sliceSource streams a fixed set of content chunks.
type sliceSource struct {
	chunks []string
	next   int
}

func (s *sliceSource) Recv() (stream.Chunk, error) {
	if s.next >= len(s.chunks) {
		return stream.Chunk{}, io.EOF
	}
	chunk := stream.Chunk{Content: s.chunks[s.next]}
	s.next++
	return chunk, nil
}
