// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the provenance-engine
// service: the reference corpus document, the analysis report shapes sent
// to clients, and the configuration surface consumed by every stage.
package types

import "time"

// Document is a reference document in the local corpus. Documents are
// created at seed or add time and never updated in place; the similarity
// engine derives all vectors from Content and owns them separately.
type Document struct {
	// ID is the database-assigned identifier. Insertion order follows ID
	// order and is the tie-break order for equal similarity scores.
	ID int64 `json:"id" yaml:"id"`

	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// Category is the subject area (e.g. "Biology", "Computer Science").
	Category string `json:"category" yaml:"category"`

	// Source is the document origin (e.g. "Wikipedia", "Thesis Repository").
	// Nil when the origin is unknown.
	Source *string `json:"source,omitempty" yaml:"source,omitempty"`

	// Content is the raw document text.
	Content string `json:"content" yaml:"content"`

	// CreatedAt is the time the document entered the corpus.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
