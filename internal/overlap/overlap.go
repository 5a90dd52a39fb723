// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlap computes lexical trigram overlap between two normalized
// token sequences. Overlap is Jaccard similarity over 3-token windows: a
// shared-vocabulary signal, deliberately not a semantic one.
package overlap

import "strings"

// windowSize is the n-gram width used for overlap scoring.
const windowSize = 3

// Score returns the Jaccard similarity between the trigram sets of the
// two token sequences. The boolean is false when either sequence is too
// short to form a trigram — no comparison happened, which is distinct
// from a comparison that found nothing shared.
func Score(a, b []string) (float64, bool) {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, false
	}

	intersection := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union), true
}

// trigrams collects the distinct contiguous 3-token windows of tokens.
func trigrams(tokens []string) map[string]struct{} {
	if len(tokens) < windowSize {
		return nil
	}
	set := make(map[string]struct{}, len(tokens)-windowSize+1)
	for i := 0; i+windowSize <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+windowSize], " ")] = struct{}{}
	}
	return set
}
