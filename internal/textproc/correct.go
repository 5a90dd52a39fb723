// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/pdiddy/provenance-engine/pkg/types"
)

// Corrector fixes OCR-mangled words by fuzzy-matching them against the
// corpus vocabulary. The vocabulary is an immutable sorted slice swapped
// atomically on Rebuild, so corrections may run concurrently with a
// corpus reload.
type Corrector struct {
	threshold  int // minimum Levenshtein ratio, 0-100
	minWordLen int

	mu       sync.RWMutex
	vocab    []string
	vocabSet map[string]struct{}
}

// NewCorrector returns a Corrector with an empty vocabulary. threshold is
// the minimum match ratio (0-100); minWordLen is the shortest word worth
// correcting.
func NewCorrector(threshold, minWordLen int) *Corrector {
	return &Corrector{
		threshold:  threshold,
		minWordLen: minWordLen,
		vocabSet:   map[string]struct{}{},
	}
}

// Rebuild derives a fresh vocabulary from every document's title and
// content and publishes it atomically.
func (c *Corrector) Rebuild(docs []types.Document) {
	set := make(map[string]struct{})
	for _, doc := range docs {
		addWords(set, doc.Title, c.minWordLen)
		addWords(set, doc.Content, c.minWordLen)
	}

	vocab := make([]string, 0, len(set))
	for w := range set {
		vocab = append(vocab, w)
	}
	sort.Strings(vocab)

	c.mu.Lock()
	c.vocab = vocab
	c.vocabSet = set
	c.mu.Unlock()
}

// VocabularySize returns the number of distinct vocabulary words.
func (c *Corrector) VocabularySize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vocab)
}

// Correct lowercases the text, strips non-alphanumerics per word, and
// replaces each word of at least minWordLen characters that is not in the
// vocabulary with its best fuzzy match. It returns the corrected text and
// the number of corrections made. With an empty vocabulary the cleaned
// text is returned unchanged.
func (c *Corrector) Correct(text string) (string, int) {
	c.mu.RLock()
	vocab, vocabSet := c.vocab, c.vocabSet
	c.mu.RUnlock()

	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	corrections := 0

	for _, word := range words {
		cleaned := cleanWord(word)
		if cleaned == "" {
			continue
		}
		if len(cleaned) < c.minWordLen || len(vocab) == 0 {
			out = append(out, cleaned)
			continue
		}
		if _, known := vocabSet[cleaned]; known {
			out = append(out, cleaned)
			continue
		}
		if match, ok := c.bestMatch(cleaned, vocab); ok {
			out = append(out, match)
			corrections++
		} else {
			out = append(out, cleaned)
		}
	}

	return strings.Join(out, " "), corrections
}

// bestMatch scans the vocabulary for the closest word at or above the
// ratio threshold. The vocabulary is sorted and only strictly better
// ratios replace the candidate, so ties resolve to the lexicographically
// first word.
func (c *Corrector) bestMatch(word string, vocab []string) (string, bool) {
	best := ""
	bestRatio := 0
	for _, candidate := range vocab {
		r := ratio(word, candidate)
		if r >= c.threshold && r > bestRatio {
			best = candidate
			bestRatio = r
		}
	}
	return best, best != ""
}

// ratio converts Levenshtein distance into a 0-100 similarity score.
func ratio(a, b string) int {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int((1.0 - float64(dist)/float64(longest)) * 100.0)
}

func addWords(set map[string]struct{}, text string, minLen int) {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		cleaned := cleanWord(word)
		if len(cleaned) >= minLen {
			set[cleaned] = struct{}{}
		}
	}
}

// cleanWord keeps only the alphanumeric runes of a word.
func cleanWord(word string) string {
	var b strings.Builder
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
