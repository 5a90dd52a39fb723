// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlap

import (
	"testing"

	"github.com/pdiddy/provenance-engine/internal/textproc"
)

func TestScoreIdenticalTexts(t *testing.T) {
	tokens := textproc.Normalize("neural networks learn hierarchical representations from data")
	score, ok := Score(tokens, tokens)
	if !ok {
		t.Fatal("identical non-trivial texts reported not computable")
	}
	if score != 1.0 {
		t.Errorf("score = %v, want 1.0", score)
	}
}

func TestScoreDisjointTexts(t *testing.T) {
	a := textproc.Normalize("mitochondria generate chemical energy inside cells")
	b := textproc.Normalize("binary trees organize sorted data for lookup")
	score, ok := Score(a, b)
	if !ok {
		t.Fatal("disjoint texts reported not computable")
	}
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestScorePartialOverlap(t *testing.T) {
	// a: {alpha beta gamma, beta gamma delta}
	// b: {alpha beta gamma, beta gamma omega}
	// intersection 1, union 3
	a := []string{"alpha", "beta", "gamma", "delta"}
	b := []string{"alpha", "beta", "gamma", "omega"}
	score, ok := Score(a, b)
	if !ok {
		t.Fatal("not computable")
	}
	if want := 1.0 / 3.0; score != want {
		t.Errorf("score = %v, want %v", score, want)
	}
}

func TestScoreNotComputable(t *testing.T) {
	long := []string{"one", "two", "three", "four"}
	tests := []struct {
		name string
		a, b []string
	}{
		{"first too short", []string{"one", "two"}, long},
		{"second too short", long, []string{"one"}},
		{"both empty", nil, nil},
		{"empty snippet", long, textproc.Normalize("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Score(tt.a, tt.b); ok {
				t.Error("Score computable, want not computable")
			}
		})
	}
}
