// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds connection setup and the wait for response headers.
	// It does not bound reading a streamed body; that is governed by the
	// per-search deadline.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "intel-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PersonaConfig holds settings for the persona registry.
type PersonaConfig struct {
	// Path is the persona configuration YAML file. When missing or
	// unparsable the registry falls back to the built-in profiles.
	Path string `json:"path" yaml:"path"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	// MaxFocusAreas caps the number of focus areas per request (default 10).
	MaxFocusAreas int `json:"max_focus_areas" yaml:"max_focus_areas"`

	// DefaultTimeRange is used when the caller supplies none (default "30d").
	DefaultTimeRange string `json:"default_time_range" yaml:"default_time_range"`

	// DefaultTimeoutSeconds bounds the streaming phase when the caller
	// supplies no timeout (default 60, clamped to [10, 120]).
	DefaultTimeoutSeconds int `json:"default_timeout_seconds" yaml:"default_timeout_seconds"`

	// ProgressInterval is the chunk interval between streamed progress
	// notifications (default 50).
	ProgressInterval int `json:"progress_interval" yaml:"progress_interval"`
}

// AgentConfig holds settings for the upstream conversational agent.
type AgentConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the streaming completion URL of the agent service.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey authenticates against the agent service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited
	// submissions (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// KnowledgeConfig holds settings for the curated knowledge store used by
// the offline agent and the knowledge admin commands.
type KnowledgeConfig struct {
	// KnowledgeDir is the base directory for the store (contains index/).
	KnowledgeDir string `json:"knowledge_dir" yaml:"knowledge_dir"`

	// MaxResults is the default maximum number of retrieved notes (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Personas  PersonaConfig   `json:"personas" yaml:"personas"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Agent     AgentConfig     `json:"agent" yaml:"agent"`
	Knowledge KnowledgeConfig `json:"knowledge" yaml:"knowledge"`
}
