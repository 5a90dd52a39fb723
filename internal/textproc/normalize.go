// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textproc cleans raw document text for similarity comparison and
// derives bounded keyword sets from it. All functions here are pure; corpus
// state lives only in the Corrector.
package textproc

import "strings"

// stopwords is the fixed English stopword list applied during
// normalization. Tokens in this set never reach the vector space or the
// keyword extractor.
var stopwords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could",
		"should", "may", "might", "must", "shall", "can", "to", "of", "in",
		"for", "on", "with", "at", "by", "from", "as", "into", "through",
		"during", "before", "after", "above", "below", "between", "under",
		"again", "further", "then", "once", "here", "there", "when", "where",
		"why", "how", "all", "each", "few", "more", "most", "other", "some",
		"such", "no", "nor", "not", "only", "own", "same", "so", "than",
		"too", "very", "just", "and", "but", "if", "or", "because", "until",
		"while", "this", "that", "these", "those", "it", "its", "i", "me",
		"my", "myself", "we", "our", "ours", "ourselves", "you", "your",
		"yours", "yourself", "yourselves", "he", "him", "his", "himself",
		"she", "her", "hers", "herself", "they", "them", "their", "theirs",
		"themselves", "what", "which", "who", "whom", "about", "against",
	}
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
}

// Normalize cleans raw text into an ordered token sequence: lowercase,
// strip everything outside [a-z0-9], split on whitespace, drop stopwords
// and tokens shorter than 3 characters (OCR noise). Deterministic for
// identical input; no I/O.
func Normalize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < 3 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// IsStopword reports whether the token is on the fixed stopword list.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
