// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import "sort"

// ExtractKeywords ranks the normalized tokens by frequency and returns at
// most maxKeywords distinct tokens of at least minLen characters. Ties are
// broken by order of first appearance, so the result is deterministic for
// any input with the same token sequence.
func ExtractKeywords(tokens []string, maxKeywords, minLen int) []string {
	if maxKeywords <= 0 || len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if len(tok) < minLen {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		ci, cj := counts[terms[i]], counts[terms[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > maxKeywords {
		terms = terms[:maxKeywords]
	}
	return terms
}
