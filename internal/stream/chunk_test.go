// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stream

import (
	"encoding/json"
	"testing"
)

func TestChunkExtract(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
		ok   bool
	}{
		{
			name: "nested event delta text",
			json: `{"event":{"payload":{"delta":{"text":"hello"}}}}`,
			want: "hello",
			ok:   true,
		},
		{
			name: "nested delta preserves whitespace token",
			json: `{"event":{"payload":{"delta":{"text":" "}}}}`,
			want: " ",
			ok:   true,
		},
		{
			name: "event payload content",
			json: `{"event":{"payload":{"content":"block"}}}`,
			want: "block",
			ok:   true,
		},
		{
			name: "top-level delta content",
			json: `{"delta":{"content":"dc"}}`,
			want: "dc",
			ok:   true,
		},
		{
			name: "top-level delta text",
			json: `{"delta":{"text":"dt"}}`,
			want: "dt",
			ok:   true,
		},
		{
			name: "plain content field",
			json: `{"content":"plain"}`,
			want: "plain",
			ok:   true,
		},
		{
			name: "bare string chunk",
			json: `"raw text"`,
			want: "raw text",
			ok:   true,
		},
		{
			name: "openai choices delta",
			json: `{"choices":[{"delta":{"content":"choice"}}]}`,
			want: "choice",
			ok:   true,
		},
		{
			name: "nested delta text wins over siblings",
			json: `{"event":{"payload":{"delta":{"text":"nested"},"content":"outer"}},"content":"top"}`,
			want: "nested",
			ok:   true,
		},
		{
			name: "unknown shape yields no content",
			json: `{"unexpected":{"stuff":1}}`,
		},
		{
			name: "blank content is no content",
			json: `{"content":"   "}`,
		},
		{
			name: "empty object",
			json: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Chunk
			if err := json.Unmarshal([]byte(tt.json), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, ok := c.Extract()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Extract() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestChunkExtractProbePriority(t *testing.T) {
	// When the nested delta text is empty the payload content is next.
	var c Chunk
	err := json.Unmarshal([]byte(`{"event":{"payload":{"delta":{"text":""},"content":"fallback"}}}`), &c)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := c.Extract()
	if !ok || got != "fallback" {
		t.Errorf("Extract() = (%q, %v), want payload content fallback", got, ok)
	}
}
