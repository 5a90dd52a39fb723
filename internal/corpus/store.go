// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists the reference document repository in SQLite
// and seeds it with a sample academic document set.
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/provenance-engine/pkg/types"
)

// Store manages the reference corpus database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the corpus SQLite database at path and
// creates the schema if it does not exist.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		source TEXT,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Add inserts one document and returns its assigned ID.
func (s *Store) Add(ctx context.Context, title, category string, source *string, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (title, category, source, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		title, category, source, content, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	return id, nil
}

// List returns every document in insertion (ID) order.
func (s *Store) List(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category, source, content, created_at FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var (
			doc       types.Document
			source    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Category, &source, &doc.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if source.Valid {
			doc.Source = &source.String
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			doc.CreatedAt = t
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Count returns the number of documents in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Clear removes every document.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return nil
}

// Ping verifies database connectivity for health reporting.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Seed inserts the given documents only when the corpus is empty, so
// repeated startups never duplicate the sample set. It returns the
// number of documents inserted.
func (s *Store) Seed(ctx context.Context, docs []SeedDocument) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, doc := range docs {
		var source *string
		if doc.Source != "" {
			source = &doc.Source
		}
		if _, err := s.Add(ctx, doc.Title, doc.Category, source, doc.Content); err != nil {
			return inserted, fmt.Errorf("seeding %q: %w", doc.Title, err)
		}
		inserted++
	}
	return inserted, nil
}
