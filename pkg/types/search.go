// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the wire and configuration types shared across
// pipeline stages. Each search invocation flows through these types:
// SearchRequest → ComposedQuery → StreamResult → QualityScore →
// FormattedReport, with a SearchMetadata record accompanying the final
// artifact for serialization at the service boundary.
package types

import "time"

// SearchRequest is a validated, normalized search invocation. It is
// constructed per call, immutable once validated, and never persisted.
type SearchRequest struct {
	// Persona names a profile registered in the persona registry.
	Persona string `json:"persona" yaml:"persona"`

	// FocusAreas are the cleaned topic strings scoping this search
	// (at most 10; falls back to the persona's configured areas).
	FocusAreas []string `json:"focus_areas" yaml:"focus_areas"`

	// TimeRange is one of the canonical tokens: 7d, 30d, 90d, 6m, 1y.
	TimeRange string `json:"time_range" yaml:"time_range"`

	// CorrelationID traces the request end-to-end. Generated when the
	// caller does not supply one.
	CorrelationID string `json:"correlation_id" yaml:"correlation_id"`

	// TimeoutSeconds bounds the streaming phase, in [10, 120].
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// ComposedQuery is the prompt material derived deterministically from a
// persona profile and a validated request.
type ComposedQuery struct {
	// PrimaryPrompt is the full prompt sent to the agent.
	PrimaryPrompt string `json:"primary_prompt" yaml:"primary_prompt"`

	// AlternativePrompts holds at most two shorter follow-up prompts
	// derived from the persona's search patterns and modifiers.
	AlternativePrompts []string `json:"alternative_prompts,omitempty" yaml:"alternative_prompts,omitempty"`

	// Metadata echoes request fields and counts for observability.
	Metadata QueryMetadata `json:"metadata" yaml:"metadata"`
}

// QueryMetadata holds machine-readable facts about a composed query.
type QueryMetadata struct {
	Persona        string `json:"persona" yaml:"persona"`
	PersonaDisplay string `json:"persona_display" yaml:"persona_display"`
	FocusAreaCount int    `json:"focus_area_count" yaml:"focus_area_count"`
	TimeRange      string `json:"time_range" yaml:"time_range"`
	PatternCount   int    `json:"pattern_count" yaml:"pattern_count"`
	CategoryCount  int    `json:"category_count" yaml:"category_count"`
}

// StreamResult is the accumulated outcome of consuming one agent stream.
// It is built incrementally and finalized when the stream terminates,
// the deadline passes, or the caller cancels. A transport failure is
// captured in Err rather than raised, so callers always receive a result.
type StreamResult struct {
	// Text is the accumulated response content. May be empty; an empty
	// text after normal completion is a valid terminal state.
	Text string `json:"text" yaml:"text"`

	// ChunkCount counts every observed chunk, extractable or not.
	ChunkCount int `json:"chunk_count" yaml:"chunk_count"`

	// ContentChunkCount counts chunks that contributed text.
	ContentChunkCount int `json:"content_chunk_count" yaml:"content_chunk_count"`

	// ElapsedSeconds is the wall-clock duration of the streaming phase.
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`

	// TimedOut reports whether the deadline expired before the stream ended.
	TimedOut bool `json:"timed_out" yaml:"timed_out"`

	// Err holds the transport error text when the stream failed.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// QualityScore is the heuristic assessment of a completed response.
// All sub-scores and the overall score are in [0, 1].
type QualityScore struct {
	Completeness      float64  `json:"completeness" yaml:"completeness"`
	Relevance         float64  `json:"relevance" yaml:"relevance"`
	Readability       float64  `json:"readability" yaml:"readability"`
	SourceAttribution float64  `json:"source_attribution" yaml:"source_attribution"`
	Actionability     float64  `json:"actionability" yaml:"actionability"`
	Overall           float64  `json:"overall" yaml:"overall"`
	Grade             string   `json:"grade" yaml:"grade"`
	Remediations      []string `json:"remediations,omitempty" yaml:"remediations,omitempty"`
}

// FormattedReport is the final rendered artifact for one search.
type FormattedReport struct {
	// Body is the complete markdown report.
	Body string `json:"body" yaml:"body"`

	// Sections maps detected section names (knowledge, web, synthesis,
	// other) to their extracted text.
	Sections map[string]string `json:"sections" yaml:"sections"`

	// Attribution lists one line per retrieval tool exercised.
	Attribution []string `json:"attribution,omitempty" yaml:"attribution,omitempty"`

	// Footer holds the report trailer metadata.
	Footer ReportFooter `json:"footer" yaml:"footer"`
}

// ReportFooter identifies when and for whom a report was generated.
type ReportFooter struct {
	Persona     string    `json:"persona" yaml:"persona"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	ReportID    string    `json:"report_id" yaml:"report_id"`
}

// SearchMetadata is the record returned alongside every report. A failed
// or degraded search still produces a readable report; Error carries the
// failure text for programmatic callers.
type SearchMetadata struct {
	Persona        string       `json:"persona" yaml:"persona"`
	FocusAreas     []string     `json:"focus_areas" yaml:"focus_areas"`
	TimeRangeUsed  string       `json:"time_range_used" yaml:"time_range_used"`
	CorrelationID  string       `json:"correlation_id" yaml:"correlation_id"`
	ElapsedSeconds float64      `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	ToolsUsed      []string     `json:"tools_used" yaml:"tools_used"`
	Quality        QualityScore `json:"quality" yaml:"quality"`
	Error          string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// SearchOutcome pairs the rendered report with its metadata record.
type SearchOutcome struct {
	Report   FormattedReport `json:"report" yaml:"report"`
	Metadata SearchMetadata  `json:"metadata" yaml:"metadata"`
}

// NewsletterResult is the compact-format artifact (newsletter or daily
// brief) produced from a base search outcome.
type NewsletterResult struct {
	Persona       string         `json:"persona" yaml:"persona"`
	CorrelationID string         `json:"correlation_id" yaml:"correlation_id"`
	Content       string         `json:"content" yaml:"content"`
	Format        string         `json:"format" yaml:"format"`
	WordCount     int            `json:"word_count" yaml:"word_count"`
	CharCount     int            `json:"char_count" yaml:"char_count"`
	Metadata      SearchMetadata `json:"metadata" yaml:"metadata"`
}
