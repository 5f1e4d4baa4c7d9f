// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Note is one curated knowledge entry. Notes are ingested from YAML files
// into the local store and retrieved by the offline agent when it answers
// knowledge-base queries.
type Note struct {
	// ID uniquely identifies the note. Generated at ingest when absent.
	ID string `json:"id" yaml:"id,omitempty"`

	// Topic is a short subject line.
	Topic string `json:"topic" yaml:"topic"`

	// Content is the note body.
	Content string `json:"content" yaml:"content"`

	// SourceURL optionally points at the origin of the note.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// Tags are lowercase topic labels for filtering.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// AddedAt records when the note entered the store.
	AddedAt time.Time `json:"added_at" yaml:"added_at,omitempty"`
}

// NoteFile is the on-disk representation of a batch of notes for ingest.
type NoteFile struct {
	Notes []Note `yaml:"notes"`
}
