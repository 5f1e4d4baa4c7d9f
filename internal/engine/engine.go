// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine orchestrates the search pipeline: request validation,
// query composition, deadline-bounded stream consumption, quality
// scoring, and report formatting. Validation errors surface to the
// caller before any streaming attempt; streaming failures are rendered
// as diagnostic reports rather than returned, so every accepted request
// yields a readable artifact.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/intel-engine/internal/persona"
	"github.com/pdiddy/intel-engine/internal/quality"
	"github.com/pdiddy/intel-engine/internal/query"
	"github.com/pdiddy/intel-engine/internal/report"
	"github.com/pdiddy/intel-engine/internal/request"
	"github.com/pdiddy/intel-engine/internal/stream"
	"github.com/pdiddy/intel-engine/pkg/types"
)

// Engine runs persona-customized searches against one agent. Safe for
// concurrent use; invocations share only the registry and the stats
// counters.
type Engine struct {
	registry *persona.Registry
	agent    stream.Agent
	cfg      types.SearchConfig
	stats    Stats
}

// New builds an engine over the given registry and agent.
func New(registry *persona.Registry, agent stream.Agent, cfg types.SearchConfig) *Engine {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = stream.DefaultProgressInterval
	}
	return &Engine{registry: registry, agent: agent, cfg: cfg}
}

// Registry exposes the persona registry for listing commands.
func (e *Engine) Registry() *persona.Registry {
	return e.registry
}

// Stats returns a snapshot of the invocation counters.
func (e *Engine) Stats() StatsSnapshot {
	return e.stats.Snapshot()
}

// Search runs one full search invocation. The returned error is non-nil
// only for validation failures; streaming-phase failures are captured in
// the outcome's metadata and rendered into the report body.
func (e *Engine) Search(ctx context.Context, personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int) (types.SearchOutcome, error) {
	outcome, _, _, err := e.search(ctx, personaName, focusAreas, timeRange, correlationID, timeoutSeconds, nil)
	return outcome, err
}

// ProgressEvent is one notification emitted by SearchStream.
type ProgressEvent struct {
	// Stage is one of: started, persona_loaded, query_built, progress,
	// completed, result.
	Stage string `json:"stage"`

	// Message is a human-readable status line.
	Message string `json:"message"`

	// Chunks and ContentChunks are set on progress events.
	Chunks        int `json:"chunks,omitempty"`
	ContentChunks int `json:"content_chunks,omitempty"`

	// Outcome is set only on the final result event.
	Outcome *types.SearchOutcome `json:"outcome,omitempty"`
}

// SearchStream runs a search while emitting incremental progress events
// on the returned channel. The channel is closed after the final result
// event. A slow receiver never stalls consumption: events are dropped
// when the buffer is full, except the terminal result event which is
// always delivered.
func (e *Engine) SearchStream(ctx context.Context, personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int) (<-chan ProgressEvent, error) {
	events := make(chan ProgressEvent, 16)

	emit := func(ev ProgressEvent) {
		select {
		case events <- ev:
		default:
		}
	}

	go func() {
		defer close(events)
		outcome, _, _, err := e.search(ctx, personaName, focusAreas, timeRange, correlationID, timeoutSeconds, emit)

		// The terminal event must not strand this goroutine when the
		// receiver walked away, so it also honors cancellation.
		final := ProgressEvent{Stage: "result", Message: "search complete", Outcome: &outcome}
		if err != nil {
			final = ProgressEvent{Stage: "result", Message: err.Error()}
		}
		select {
		case events <- final:
		case <-ctx.Done():
		}
	}()

	return events, nil
}

// search runs the pipeline and returns, alongside the outcome, the raw
// stream result and the persona profile the invocation resolved. Callers
// needing the profile must use the returned one rather than re-reading
// the registry, which may have been reloaded concurrently.
func (e *Engine) search(ctx context.Context, personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int, emit func(ProgressEvent)) (types.SearchOutcome, types.StreamResult, persona.Profile, error) {
	if emit == nil {
		emit = func(ProgressEvent) {}
	}
	start := time.Now()
	emit(ProgressEvent{Stage: "started", Message: "validating request"})

	req, profile, err := e.validate(personaName, focusAreas, timeRange, correlationID, timeoutSeconds)
	if err != nil {
		return types.SearchOutcome{}, types.StreamResult{}, persona.Profile{}, err
	}
	emit(ProgressEvent{Stage: "persona_loaded", Message: "persona " + profile.DisplayName})

	composed, err := query.Compose(profile, req.FocusAreas, req.TimeRange)
	if err != nil {
		return types.SearchOutcome{}, types.StreamResult{}, persona.Profile{}, fmt.Errorf("composing query: %w", err)
	}
	emit(ProgressEvent{Stage: "query_built", Message: fmt.Sprintf("%d focus areas, range %s", len(req.FocusAreas), req.TimeRange)})

	consumer := stream.Consumer{
		Timeout:       time.Duration(req.TimeoutSeconds) * time.Second,
		ProgressEvery: e.cfg.ProgressInterval,
		OnProgress: func(chunks, contentChunks, bytes int) {
			emit(ProgressEvent{
				Stage:         "progress",
				Message:       fmt.Sprintf("%d chunks received", chunks),
				Chunks:        chunks,
				ContentChunks: contentChunks,
			})
		},
	}
	result := consumer.Run(ctx, e.agent, composed.PrimaryPrompt)
	emit(ProgressEvent{Stage: "completed", Message: fmt.Sprintf("stream finished after %.1fs", result.ElapsedSeconds)})

	score := quality.Analyze(result.Text, req.Persona, map[string]any{
		"sources_used": strings.Join(report.ToolsUsed(result), ", "),
	})
	formatted := report.Format(result, profile, req.FocusAreas, time.Now())

	outcome := types.SearchOutcome{
		Report: formatted,
		Metadata: types.SearchMetadata{
			Persona:        req.Persona,
			FocusAreas:     req.FocusAreas,
			TimeRangeUsed:  req.TimeRange,
			CorrelationID:  req.CorrelationID,
			ElapsedSeconds: result.ElapsedSeconds,
			ToolsUsed:      report.ToolsUsed(result),
			Quality:        score,
			Error:          streamError(result),
		},
	}

	e.stats.record(time.Since(start))
	return outcome, result, profile, nil
}

// validate normalizes the raw invocation parameters into a SearchRequest.
func (e *Engine) validate(personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int) (types.SearchRequest, persona.Profile, error) {
	if err := request.ValidatePersona(personaName, e.registry.Names()); err != nil {
		return types.SearchRequest{}, persona.Profile{}, err
	}
	profile, err := e.registry.Get(personaName)
	if err != nil {
		return types.SearchRequest{}, persona.Profile{}, err
	}

	cleaned, _, err := request.CleanFocusAreas(focusAreas, profile.FocusAreas)
	if err != nil {
		return types.SearchRequest{}, persona.Profile{}, err
	}

	corrID, err := request.ValidateCorrelationID(correlationID)
	if err != nil {
		return types.SearchRequest{}, persona.Profile{}, err
	}

	timeout, err := request.ValidateTimeout(timeoutSeconds)
	if err != nil {
		return types.SearchRequest{}, persona.Profile{}, err
	}

	return types.SearchRequest{
		Persona:        personaName,
		FocusAreas:     cleaned,
		TimeRange:      request.NormalizeTimeRange(timeRange),
		CorrelationID:  corrID,
		TimeoutSeconds: timeout,
	}, profile, nil
}

// Newsletter runs a search and renders the newsletter transform.
func (e *Engine) Newsletter(ctx context.Context, personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int) (types.NewsletterResult, error) {
	return e.compact(ctx, "newsletter", personaName, focusAreas, timeRange, correlationID, timeoutSeconds)
}

// DailyBrief runs a search and renders the daily-brief transform.
func (e *Engine) DailyBrief(ctx context.Context, personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int) (types.NewsletterResult, error) {
	return e.compact(ctx, "daily_brief", personaName, focusAreas, timeRange, correlationID, timeoutSeconds)
}

func (e *Engine) compact(ctx context.Context, format, personaName string, focusAreas []string, timeRange, correlationID string, timeoutSeconds int) (types.NewsletterResult, error) {
	outcome, result, profile, err := e.search(ctx, personaName, focusAreas, timeRange, correlationID, timeoutSeconds, nil)
	if err != nil {
		return types.NewsletterResult{}, err
	}

	// The compact transforms consume the raw stream text, not the
	// formatted report: they are line-based digests of what the agent
	// actually said, total over empty or malformed text.
	var content string
	switch format {
	case "daily_brief":
		content = report.DailyBrief(result.Text, profile, outcome.Metadata.FocusAreas, time.Now())
	default:
		content = report.Newsletter(result.Text, profile, time.Now())
	}

	return types.NewsletterResult{
		Persona:       personaName,
		CorrelationID: outcome.Metadata.CorrelationID,
		Content:       content,
		Format:        format,
		WordCount:     len(strings.Fields(content)),
		CharCount:     len(content),
		Metadata:      outcome.Metadata,
	}, nil
}

func streamError(result types.StreamResult) string {
	switch {
	case result.Err != "":
		return result.Err
	case result.TimedOut:
		return "stream timed out before completion"
	default:
		return ""
	}
}
