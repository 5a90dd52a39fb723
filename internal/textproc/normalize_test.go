// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"lowercase and punctuation",
			"Neural Networks: learn, from DATA!",
			[]string{"neural", "networks", "learn", "data"},
		},
		{
			"stopwords removed",
			"the cell is the unit of life",
			[]string{"cell", "unit", "life"},
		},
		{
			"short tokens dropped",
			"an ML ai x9 model",
			[]string{"model"},
		},
		{
			"digits kept, order preserved",
			"covid19 spread in 2020",
			[]string{"covid19", "spread", "2020"},
		},
		{"empty input", "", nil},
		{"only stopwords", "the and of", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	text := "Mitochondria generate most of the cell's supply of ATP energy."
	first := Normalize(text)
	for i := 0; i < 5; i++ {
		if got := Normalize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Normalize not deterministic: %v vs %v", got, first)
		}
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("the") {
		t.Error("IsStopword(the) = false, want true")
	}
	if IsStopword("mitochondria") {
		t.Error("IsStopword(mitochondria) = true, want false")
	}
}
