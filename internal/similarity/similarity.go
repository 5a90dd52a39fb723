// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity maintains a TF-IDF vector space over the reference
// corpus and scores submitted text against every document by cosine
// similarity.
//
// The vocabulary, IDF values, and document vectors live in an immutable
// Snapshot. Rebuild constructs a complete new snapshot and publishes it
// under the write lock, so concurrent readers see either the old space or
// the new one, never a partially rebuilt mix.
package similarity

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/pdiddy/provenance-engine/internal/textproc"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

// ErrVocabularyStale reports an attempt to score with a snapshot that is
// no longer the published one. Under the snapshot discipline this cannot
// happen; if it does, the operation is aborted rather than returning
// scores from mismatched dimensional spaces.
var ErrVocabularyStale = errors.New("vector space snapshot is stale")

// Match is one corpus document's similarity against the query.
type Match struct {
	// DocumentID identifies the corpus document.
	DocumentID int64

	// Score is the cosine similarity in [0,1].
	Score float64
}

// docVector is a corpus document projected into the snapshot's space.
// Vectors are sparse maps from dimension index to TF-IDF weight.
type docVector struct {
	id   int64
	vec  map[int]float64
	norm float64
}

// Snapshot is one immutable generation of the vector space.
type Snapshot struct {
	generation uint64
	vocab      map[string]int
	idf        []float64
	// unseenIDF weights query terms outside the vocabulary. They add to
	// the query magnitude (diluting every cosine) but to no dot product.
	unseenIDF float64
	docs      []docVector
}

// Generation returns the snapshot's generation number.
func (s *Snapshot) Generation() uint64 { return s.generation }

// DocumentCount returns the number of document vectors in the snapshot.
func (s *Snapshot) DocumentCount() int { return len(s.docs) }

// Index owns the published snapshot.
type Index struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewIndex returns an Index with an empty generation-zero snapshot.
// Scoring against it yields no matches until the first Rebuild.
func NewIndex() *Index {
	return &Index{snap: &Snapshot{vocab: map[string]int{}, unseenIDF: 1}}
}

// Rebuild derives a new vector space from the corpus documents and
// publishes it atomically. Call it whenever corpus membership changes.
func (x *Index) Rebuild(docs []types.Document) {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := textproc.Normalize(doc.Content)
		tokenized[i] = tokens
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		// Smoothed IDF, never zero.
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	snap := &Snapshot{
		vocab:     vocab,
		idf:       idf,
		unseenIDF: math.Log(1+n) + 1,
		docs:      make([]docVector, 0, len(docs)),
	}

	for i, doc := range docs {
		vec, norm := projectKnown(tokenized[i], vocab, idf)
		snap.docs = append(snap.docs, docVector{id: doc.ID, vec: vec, norm: norm})
	}

	x.mu.Lock()
	snap.generation = x.snap.generation + 1
	x.snap = snap
	x.mu.Unlock()
}

// Current returns the published snapshot.
func (x *Index) Current() *Snapshot {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.snap
}

// Score projects the normalized query tokens into the current vector
// space and returns one Match per corpus document, sorted by descending
// similarity with ties in corpus insertion order.
func (x *Index) Score(tokens []string) ([]Match, error) {
	return x.ScoreWith(x.Current(), tokens)
}

// ScoreWith scores against a caller-held snapshot. It fails with
// ErrVocabularyStale when the snapshot is no longer the published one.
func (x *Index) ScoreWith(snap *Snapshot, tokens []string) ([]Match, error) {
	x.mu.RLock()
	current := x.snap
	x.mu.RUnlock()
	if snap != current {
		return nil, ErrVocabularyStale
	}
	return snap.score(tokens), nil
}

// score computes cosine similarity between the query and every document.
func (s *Snapshot) score(tokens []string) []Match {
	if len(s.docs) == 0 {
		return nil
	}

	qvec, qnorm := s.projectQuery(tokens)

	matches := make([]Match, len(s.docs))
	for i, doc := range s.docs {
		matches[i] = Match{DocumentID: doc.id, Score: cosine(qvec, qnorm, doc)}
	}

	// Stable keeps insertion order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// projectQuery builds the query's sparse weight vector. Terms outside the
// vocabulary contribute only to the magnitude, with the zero-document-
// frequency IDF; they never grow the vocabulary at query time.
func (s *Snapshot) projectQuery(tokens []string) (map[int]float64, float64) {
	if len(tokens) == 0 {
		return nil, 0
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))

	vec := make(map[int]float64)
	normSq := 0.0
	for term, count := range counts {
		tf := float64(count) / total
		if idx, ok := s.vocab[term]; ok {
			w := tf * s.idf[idx]
			vec[idx] = w
			normSq += w * w
		} else {
			w := tf * s.unseenIDF
			normSq += w * w
		}
	}
	return vec, math.Sqrt(normSq)
}

// projectKnown builds a document's sparse vector over the vocabulary.
// Every corpus token is in the vocabulary at rebuild time.
func projectKnown(tokens []string, vocab map[string]int, idf []float64) (map[int]float64, float64) {
	if len(tokens) == 0 {
		return nil, 0
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))

	vec := make(map[int]float64)
	normSq := 0.0
	for term, count := range counts {
		idx, ok := vocab[term]
		if !ok {
			continue
		}
		w := float64(count) / total * idf[idx]
		vec[idx] = w
		normSq += w * w
	}
	return vec, math.Sqrt(normSq)
}

// cosine is (A·B)/(‖A‖‖B‖), defined as 0 when either magnitude is zero.
func cosine(qvec map[int]float64, qnorm float64, doc docVector) float64 {
	if qnorm == 0 || doc.norm == 0 {
		return 0
	}
	dot := 0.0
	for idx, qw := range qvec {
		dot += qw * doc.vec[idx]
	}
	sim := dot / (qnorm * doc.norm)
	// Clamp floating-point drift.
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}
