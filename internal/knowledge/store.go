// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge persists curated intelligence notes and builds a
// full-text retrieval index. The store backs the offline agent and the
// knowledge admin commands; search history is never written here.
package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/intel-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "intel.db"
)

// Store manages the knowledge note SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the note database at
// knowledgeDir/index/intel.db, creating the schema if needed.
func NewStore(cfg types.KnowledgeConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.KnowledgeDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			topic TEXT NOT NULL,
			content TEXT NOT NULL,
			source_url TEXT,
			tags TEXT,
			added_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_topic ON notes(topic)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='notes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE notes_fts USING fts5(topic, content, content=notes, content_rowid=rowid)`,
			`CREATE TRIGGER notes_ai AFTER INSERT ON notes BEGIN
				INSERT INTO notes_fts(rowid, topic, content) VALUES (new.rowid, new.topic, new.content);
			END`,
			`CREATE TRIGGER notes_ad AFTER DELETE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, topic, content) VALUES('delete', old.rowid, old.topic, old.content);
			END`,
			`CREATE TRIGGER notes_au AFTER UPDATE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, topic, content) VALUES('delete', old.rowid, old.topic, old.content);
				INSERT INTO notes_fts(rowid, topic, content) VALUES (new.rowid, new.topic, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from one note-file ingestion run.
type IngestSummary struct {
	Added  int
	Failed int
}

// Ingest reads a YAML note file and upserts its notes into the index.
// Notes without an id get a generated one. Per-note failures are
// reported on w and counted; the run continues past them.
func (s *Store) Ingest(ctx context.Context, path string, w io.Writer) (IngestSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading note file: %w", err)
	}

	var file types.NoteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return IngestSummary{}, fmt.Errorf("parsing note file: %w", err)
	}

	var summary IngestSummary
	for _, note := range file.Notes {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if note.ID == "" {
			note.ID = uuid.NewString()
		}
		if note.AddedAt.IsZero() {
			note.AddedAt = time.Now().UTC()
		}
		if note.Topic == "" || note.Content == "" {
			fmt.Fprintf(w, "failed  %s: topic and content are required\n", note.ID)
			summary.Failed++
			continue
		}

		tagsJSON, _ := json.Marshal(note.Tags)
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO notes (id, topic, content, source_url, tags, added_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				topic=excluded.topic, content=excluded.content,
				source_url=excluded.source_url, tags=excluded.tags,
				added_at=excluded.added_at`,
			note.ID, note.Topic, note.Content, note.SourceURL,
			string(tagsJSON), note.AddedAt.Format(time.RFC3339),
		)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", note.ID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "added   %s (%s)\n", note.ID, note.Topic)
		summary.Added++
	}

	fmt.Fprintf(w, "\nadded: %d, failed: %d\n", summary.Added, summary.Failed)
	return summary, nil
}

// Remove deletes a note by id. It reports whether a note was deleted.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of stored notes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting notes: %w", err)
	}
	return n, nil
}
