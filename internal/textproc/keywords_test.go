// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		max    int
		minLen int
		want   []string
	}{
		{
			"frequency descending",
			[]string{"cat", "dog", "cat", "cat", "dog", "bird"},
			10, 3,
			[]string{"cat", "dog", "bird"},
		},
		{
			"ties broken by first occurrence",
			[]string{"zebra", "apple", "zebra", "apple"},
			10, 3,
			[]string{"zebra", "apple"},
		},
		{
			"capped at max",
			[]string{"one", "two", "three", "four"},
			2, 3,
			[]string{"one", "two"},
		},
		{
			"short tokens excluded",
			[]string{"ab", "ab", "ab", "long"},
			10, 3,
			[]string{"long"},
		},
		{"empty input", nil, 10, 3, nil},
		{"zero max", []string{"cat"}, 0, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.tokens, tt.max, tt.minLen)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Stopwords are filtered during normalization, so "the" never competes
// with real terms no matter how often it repeats.
func TestExtractKeywordsAfterNormalize(t *testing.T) {
	tokens := Normalize("the the the cat cat dog")
	got := ExtractKeywords(tokens, 2, 3)
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want %v", got, want)
	}
}

// Identical token multisets yield identical keyword sets regardless of
// the raw formatting that produced them.
func TestExtractKeywordsDeterministic(t *testing.T) {
	a := Normalize("Quantum computing uses quantum bits for computing tasks")
	b := Normalize("quantum   COMPUTING  uses quantum bits, for computing tasks!")
	ka := ExtractKeywords(a, 10, 3)
	kb := ExtractKeywords(b, 10, 3)
	if !reflect.DeepEqual(ka, kb) {
		t.Errorf("keyword sets differ: %v vs %v", ka, kb)
	}
}
