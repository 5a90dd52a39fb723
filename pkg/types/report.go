// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchResult is a single corpus match in a local analysis report.
type MatchResult struct {
	// DocumentID is the database ID of the matched document.
	DocumentID int64 `json:"document_id" yaml:"document_id"`

	// Title is the matched document's title.
	Title string `json:"title" yaml:"title"`

	// Category is the matched document's subject area.
	Category string `json:"category" yaml:"category"`

	// Source is the matched document's origin, nil when unknown.
	Source *string `json:"source,omitempty" yaml:"source,omitempty"`

	// Score is the cosine similarity against the submitted text,
	// rounded to 4 decimals.
	Score float64 `json:"score" yaml:"score"`

	// Label classifies the score: "High Probability of Plagiarism",
	// "Moderate Similarity Detected", or "Original Content".
	Label string `json:"label" yaml:"label"`
}

// AnalysisResponse is the report for the local (corpus) analysis path.
type AnalysisResponse struct {
	// StudentID echoes the identifier from the request.
	StudentID string `json:"student_id" yaml:"student_id"`

	// Decision is the overall verdict, derived from the highest score.
	Decision string `json:"decision" yaml:"decision"`

	// DecisionColor is the UI color for the decision: red, yellow, or green.
	DecisionColor string `json:"decision_color" yaml:"decision_color"`

	// HighestScore is the best similarity score found, rounded to 4 decimals.
	HighestScore float64 `json:"highest_score" yaml:"highest_score"`

	// WordCount is the number of meaningful words after normalization.
	WordCount int `json:"word_count" yaml:"word_count"`

	// TopMatches lists the best corpus matches, highest score first.
	TopMatches []MatchResult `json:"top_matches" yaml:"top_matches"`
}

// ExternalSource is one candidate work returned by the external
// bibliographic service. Every field the upstream record may omit is a
// pointer; nil means the field was absent, never "empty" or "zero".
type ExternalSource struct {
	// Source names the bibliographic service (always "Crossref" today).
	Source string `json:"source" yaml:"source"`

	// DOI is the candidate's digital object identifier, if any.
	DOI *string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Title is the candidate's title, if any.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Authors lists author names in "given family" form; possibly empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, if known.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// AbstractSnippet is the markup-stripped, truncated abstract, if any.
	AbstractSnippet *string `json:"abstract_snippet,omitempty" yaml:"abstract_snippet,omitempty"`

	// Score is the relevance score normalized to [0,1] against the batch
	// maximum, if the service reported one.
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// URL is the canonical link to the work, if any.
	URL *string `json:"url,omitempty" yaml:"url,omitempty"`

	// Publisher is the publisher name, if any.
	Publisher *string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// PlagiarismScore is the trigram overlap between the submitted text
	// and AbstractSnippet. Nil when no snippet exists or either text is
	// too short to form trigrams — never coerced to 0.
	PlagiarismScore *float64 `json:"plagiarism_score,omitempty" yaml:"plagiarism_score,omitempty"`
}

// ExternalAnalysisResponse is the report for the external retrieval path.
type ExternalAnalysisResponse struct {
	// StudentID echoes the identifier from the request.
	StudentID string `json:"student_id" yaml:"student_id"`

	// QueryKeywords are the extracted keywords the query was built from.
	QueryKeywords []string `json:"query_keywords" yaml:"query_keywords"`

	// ResultCount is len(Sources).
	ResultCount int `json:"result_count" yaml:"result_count"`

	// Sources lists the candidate works in upstream order.
	Sources []ExternalSource `json:"sources" yaml:"sources"`

	// LatencySeconds is the time spent in the cache-or-retrieve step.
	LatencySeconds float64 `json:"latency_seconds" yaml:"latency_seconds"`
}
