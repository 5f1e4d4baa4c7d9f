// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stream consumes the chunked response of the upstream
// conversational agent. Chunks arrive in heterogeneous wire shapes; the
// package models them as one tagged union with a total extraction
// function, and drives consumption under a hard deadline so a hung or
// infinite stream can never stall a search.
package stream

import "encoding/json"

// Chunk is one unit of a streamed agent response. Exactly the known
// upstream wire shapes are decoded; anything else parses to an empty
// chunk that Extract maps to "no content" rather than an error.
type Chunk struct {
	Event   *Event   `json:"event,omitempty"`
	Delta   *Delta   `json:"delta,omitempty"`
	Content string   `json:"content,omitempty"`
	Choices []Choice `json:"choices,omitempty"`

	// Raw holds the chunk body when the wire value was a bare string.
	Raw string `json:"-"`
}

// Event is the nested envelope used by turn-based agent protocols.
type Event struct {
	Payload *Payload `json:"payload,omitempty"`
}

// Payload carries either an incremental delta or a complete content block.
type Payload struct {
	Delta   *Delta `json:"delta,omitempty"`
	Content string `json:"content,omitempty"`
}

// Delta is an incremental text fragment.
type Delta struct {
	Text    string `json:"text,omitempty"`
	Content string `json:"content,omitempty"`
}

// Choice is the OpenAI-style completion choice wrapper.
type Choice struct {
	Delta *Delta `json:"delta,omitempty"`
}

// UnmarshalJSON accepts both object-shaped chunks and bare JSON strings.
func (c *Chunk) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Raw)
	}
	type alias Chunk
	return json.Unmarshal(data, (*alias)(c))
}

// Extract returns the chunk's text content, probing the known shapes in
// fixed priority order; the first probe yielding a non-empty string
// wins. The nested delta-text probe preserves whitespace-only fragments
// because streamed tokens may legitimately be bare spaces; the remaining
// probes require non-blank content. Unknown shapes yield ("", false).
func (c Chunk) Extract() (string, bool) {
	if c.Event != nil && c.Event.Payload != nil {
		if d := c.Event.Payload.Delta; d != nil && d.Text != "" {
			return d.Text, true
		}
		if !blank(c.Event.Payload.Content) {
			return c.Event.Payload.Content, true
		}
	}
	if c.Delta != nil {
		if !blank(c.Delta.Content) {
			return c.Delta.Content, true
		}
		if !blank(c.Delta.Text) {
			return c.Delta.Text, true
		}
	}
	if !blank(c.Content) {
		return c.Content, true
	}
	if !blank(c.Raw) {
		return c.Raw, true
	}
	for _, choice := range c.Choices {
		if choice.Delta != nil && !blank(choice.Delta.Content) {
			return choice.Delta.Content, true
		}
	}
	return "", false
}

func blank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
