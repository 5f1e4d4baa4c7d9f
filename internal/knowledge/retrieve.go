// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/intel-engine/pkg/types"
)

// Retrieve runs a full-text query over the note index. Results are
// ranked by FTS relevance; an empty query lists notes by topic instead.
// max caps the result count, zero selecting the store default.
func (s *Store) Retrieve(ctx context.Context, query string, max int) ([]types.Note, error) {
	if max <= 0 {
		max = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	if query != "" {
		qb.WriteString(
			`SELECT n.id, n.topic, n.content, n.source_url, n.tags, n.added_at
			FROM notes_fts
			JOIN notes n ON n.rowid = notes_fts.rowid
			WHERE notes_fts MATCH ?
			ORDER BY notes_fts.rank`)
		args = append(args, ftsQuery(query))
	} else {
		qb.WriteString(
			`SELECT n.id, n.topic, n.content, n.source_url, n.tags, n.added_at
			FROM notes n
			ORDER BY n.topic, n.added_at`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, max)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []types.Note
	for rows.Next() {
		var (
			note      types.Note
			sourceURL sql.NullString
			tagsJSON  sql.NullString
			addedAt   sql.NullString
		)
		if err := rows.Scan(&note.ID, &note.Topic, &note.Content, &sourceURL, &tagsJSON, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if sourceURL.Valid {
			note.SourceURL = sourceURL.String
		}
		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &note.Tags)
		}
		if addedAt.Valid {
			note.AddedAt, _ = time.Parse(time.RFC3339, addedAt.String)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// ftsQuery rewrites free text into an OR-joined FTS5 match expression so
// multi-word focus areas match notes containing any of the words.
func ftsQuery(query string) string {
	words := strings.Fields(query)
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(strings.ReplaceAll(w, `"`, ``), `,.:;`)
		if w == "" {
			continue
		}
		quoted = append(quoted, `"`+w+`"`)
	}
	return strings.Join(quoted, " OR ")
}
