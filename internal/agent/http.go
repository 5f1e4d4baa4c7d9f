// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent provides the upstream stream.Agent implementations: an
// HTTP client speaking newline-delimited JSON to a remote agent
// service, and a local knowledge-backed agent for offline operation.
package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/pdiddy/intel-engine/internal/httputil"
	"github.com/pdiddy/intel-engine/internal/stream"
	"github.com/pdiddy/intel-engine/pkg/types"
)

// maxChunkLine bounds one NDJSON line; agent deltas are small but a
// complete-content chunk can carry a whole report.
const maxChunkLine = 1 << 20

// HTTPAgent submits prompts to a remote agent service and decodes its
// newline-delimited JSON chunk stream.
type HTTPAgent struct {
	cfg    types.AgentConfig
	client *http.Client

	// Warnings receives rate-limit notices; nil discards them.
	Warnings io.Writer
}

// NewHTTPAgent builds an agent client from cfg. cfg.Timeout bounds
// connection setup and the wait for response headers only; the streamed
// body has no transport deadline of its own, since its lifetime belongs
// to the consumer's search deadline via the request context. A
// Client-level timeout here would cut healthy streams that simply
// outlast it.
func NewHTTPAgent(cfg types.AgentConfig) *HTTPAgent {
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
	}
	return &HTTPAgent{
		cfg:    cfg,
		client: &http.Client{Transport: transport},
	}
}

// submitBody is the request payload of the agent's streaming endpoint.
type submitBody struct {
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Submit posts the prompt and returns a Source over the response body.
// The response stays open until the source reaches EOF or is abandoned
// via context cancellation.
func (a *HTTPAgent) Submit(ctx context.Context, prompt string) (stream.Source, error) {
	payload, err := json.Marshal(submitBody{Prompt: prompt, Stream: true})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")
	if a.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", a.cfg.UserAgent)
	}
	if a.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, a.client, req, a.cfg.MaxRetries, a.Warnings)
	if err != nil {
		return nil, fmt.Errorf("submitting prompt: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("agent returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxChunkLine)
	return &httpSource{body: resp.Body, scanner: scanner}, nil
}

// httpSource decodes one chunk per NDJSON line. Undecodable lines yield
// an empty chunk rather than an error so one garbled line cannot abort
// the stream.
type httpSource struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

func (s *httpSource) Recv() (stream.Chunk, error) {
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk stream.Chunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return stream.Chunk{}, nil
		}
		return chunk, nil
	}

	s.body.Close()
	if err := s.scanner.Err(); err != nil {
		return stream.Chunk{}, fmt.Errorf("reading stream: %w", err)
	}
	return stream.Chunk{}, io.EOF
}
