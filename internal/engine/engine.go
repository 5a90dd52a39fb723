// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine orchestrates the two analysis paths: local scoring
// against the corpus vector space, and external retrieval with trigram
// overlap scoring against candidate abstracts. The paths share no
// mutable state beyond read access to the vector space and the result
// cache, so one analysis may run them concurrently.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/provenance-engine/internal/cache"
	"github.com/pdiddy/provenance-engine/internal/corpus"
	"github.com/pdiddy/provenance-engine/internal/metrics"
	"github.com/pdiddy/provenance-engine/internal/overlap"
	"github.com/pdiddy/provenance-engine/internal/similarity"
	"github.com/pdiddy/provenance-engine/internal/textproc"
	"github.com/pdiddy/provenance-engine/pkg/log"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

// ErrInputTooShort reports that the submitted text yields too few
// meaningful words after normalization to analyze.
var ErrInputTooShort = errors.New("text too short for analysis")

// Retriever fetches candidate works for a keyword set. Satisfied by
// retrieval.Client; tests substitute fakes.
type Retriever interface {
	Search(ctx context.Context, keywords []string) ([]types.ExternalSource, error)
}

// Engine runs analyses against a corpus store, a similarity index, and
// an external retriever behind the result cache.
type Engine struct {
	store     *corpus.Store
	index     *similarity.Index
	corrector *textproc.Corrector
	cache     *cache.Cache
	retriever Retriever
	cfg       types.Config

	mu   sync.RWMutex
	docs map[int64]types.Document
}

// New assembles an Engine. Call ReloadCorpus before the first analysis
// and after every corpus mutation.
func New(store *corpus.Store, retriever Retriever, cfg types.Config) *Engine {
	return &Engine{
		store:     store,
		index:     similarity.NewIndex(),
		corrector: textproc.NewCorrector(cfg.Analysis.FuzzyThreshold, cfg.Analysis.FuzzyMinWordLen),
		cache:     cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL),
		retriever: retriever,
		docs:      map[int64]types.Document{},
		cfg:       cfg,
	}
}

// ReloadCorpus reads the corpus and atomically republishes the vector
// space and the correction vocabulary.
func (e *Engine) ReloadCorpus(ctx context.Context) error {
	docs, err := e.store.List(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	e.index.Rebuild(docs)
	e.corrector.Rebuild(docs)

	byID := make(map[int64]types.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}
	e.mu.Lock()
	e.docs = byID
	e.mu.Unlock()

	log.Infow("corpus reloaded",
		"documents", len(docs),
		"generation", e.index.Current().Generation(),
		"vocabulary_words", e.corrector.VocabularySize())
	return nil
}

// prepare applies optional OCR correction, normalizes the text, and
// enforces the minimum word gate.
func (e *Engine) prepare(text string) ([]string, error) {
	if e.cfg.Analysis.CorrectOCR {
		corrected, n := e.corrector.Correct(text)
		if n > 0 {
			log.Infow("corrected OCR errors", "corrections", n)
		}
		text = corrected
	}

	tokens := textproc.Normalize(text)
	if len(tokens) < e.cfg.Analysis.MinWords {
		return nil, fmt.Errorf("%w: %d meaningful words, need %d",
			ErrInputTooShort, len(tokens), e.cfg.Analysis.MinWords)
	}
	return tokens, nil
}

// AnalyzeLocal scores the text against every corpus document and
// assembles the local report.
func (e *Engine) AnalyzeLocal(ctx context.Context, studentID, text string) (*types.AnalysisResponse, error) {
	tokens, err := e.prepare(text)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("local", "error").Inc()
		return nil, err
	}

	matches, err := e.index.Score(tokens)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("local", "error").Inc()
		return nil, err
	}

	resp := &types.AnalysisResponse{
		StudentID:     studentID,
		WordCount:     len(tokens),
		TopMatches:    []types.MatchResult{},
		Decision:      similarity.DecisionOriginal,
		DecisionColor: "green",
	}

	if len(matches) > 0 {
		resp.HighestScore = round4(matches[0].Score)
		resp.Decision = similarity.Classify(matches[0].Score,
			e.cfg.Analysis.ThresholdHigh, e.cfg.Analysis.ThresholdModerate)
		resp.DecisionColor = similarity.DecisionColor(resp.Decision)
	}

	topN := e.cfg.Analysis.TopMatches
	if topN <= 0 || topN > len(matches) {
		topN = len(matches)
	}
	e.mu.RLock()
	byID := e.docs
	e.mu.RUnlock()
	for _, m := range matches[:topN] {
		doc, ok := byID[m.DocumentID]
		if !ok {
			continue
		}
		resp.TopMatches = append(resp.TopMatches, types.MatchResult{
			DocumentID: m.DocumentID,
			Title:      doc.Title,
			Category:   doc.Category,
			Source:     doc.Source,
			Score:      round4(m.Score),
			Label: similarity.Classify(m.Score,
				e.cfg.Analysis.ThresholdHigh, e.cfg.Analysis.ThresholdModerate),
		})
	}

	metrics.AnalysesTotal.WithLabelValues("local", "ok").Inc()
	return resp, nil
}

// AnalyzeExternal extracts keywords, retrieves candidates through the
// cache, and scores trigram overlap against each candidate's abstract.
func (e *Engine) AnalyzeExternal(ctx context.Context, studentID, text string) (*types.ExternalAnalysisResponse, error) {
	tokens, err := e.prepare(text)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("external", "error").Inc()
		return nil, err
	}

	keywords := textproc.ExtractKeywords(tokens,
		e.cfg.Crossref.MaxKeywords, e.cfg.Crossref.MinKeywordLen)

	resp := &types.ExternalAnalysisResponse{
		StudentID:     studentID,
		QueryKeywords: keywords,
		Sources:       []types.ExternalSource{},
	}

	// No keywords means nothing to query; an empty report, not an error.
	if len(keywords) == 0 {
		metrics.AnalysesTotal.WithLabelValues("external", "ok").Inc()
		return resp, nil
	}

	start := time.Now()
	cached, hit, err := e.cache.GetOrFetch(ctx, keywords, func(ctx context.Context) ([]types.ExternalSource, error) {
		return e.retriever.Search(ctx, keywords)
	})
	resp.LatencySeconds = time.Since(start).Seconds()
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("external", "error").Inc()
		return nil, err
	}
	if hit {
		log.Infow("external cache hit", "keywords", keywords)
	}

	// Candidates are cached without overlap scores; overlap depends on
	// the submitted text, so recompute it per analysis on a copy.
	for _, src := range cached {
		if src.AbstractSnippet != nil {
			snippetTokens := textproc.Normalize(*src.AbstractSnippet)
			if score, ok := overlap.Score(tokens, snippetTokens); ok {
				rounded := round4(score)
				src.PlagiarismScore = &rounded
			}
		}
		resp.Sources = append(resp.Sources, src)
	}
	resp.ResultCount = len(resp.Sources)

	metrics.AnalysesTotal.WithLabelValues("external", "ok").Inc()
	return resp, nil
}

// Result is the outcome of a combined analysis. Either path may fail
// independently; an external failure never suppresses the local report.
type Result struct {
	Local       *types.AnalysisResponse
	External    *types.ExternalAnalysisResponse
	LocalErr    error
	ExternalErr error
}

// Analyze runs both paths concurrently and reports each outcome
// separately. The two reports are never merged into one score.
func (e *Engine) Analyze(ctx context.Context, studentID, text string) Result {
	var res Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Local, res.LocalErr = e.AnalyzeLocal(ctx, studentID, text)
		return nil
	})
	g.Go(func() error {
		res.External, res.ExternalErr = e.AnalyzeExternal(ctx, studentID, text)
		return nil
	})
	g.Wait()

	return res
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
