// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package expand

import (
	"reflect"
	"testing"
)

func TestExpandThemeAlwaysFirst(t *testing.T) {
	e := NewStaticExpander()

	tests := []string{"nature", "quantum chromodynamics", "Modern Love", ""}
	for _, theme := range tests {
		terms := e.Expand(theme)
		if len(terms) == 0 {
			t.Fatalf("Expand(%q) returned no terms", theme)
		}
		if terms[0] != theme {
			t.Errorf("Expand(%q)[0] = %q, want original theme first", theme, terms[0])
		}
	}
}

func TestExpandConceptTable(t *testing.T) {
	e := NewStaticExpander()

	terms := e.Expand("nature")
	want := []string{"nature", "landscape", "flowers", "animals", "birds", "trees", "garden"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("Expand(nature) = %v, want %v", terms, want)
	}
}

func TestExpandConceptMatchesKeyword(t *testing.T) {
	e := NewStaticExpander()

	// "battle" is a keyword of the war concept, so the war terms come along.
	terms := e.Expand("famous battle")
	found := false
	for _, term := range terms {
		if term == "warrior" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expand(famous battle) = %v, want war concept terms included", terms)
	}
}

func TestExpandOnlyFirstConceptFires(t *testing.T) {
	e := NewStaticExpander()

	// "nature" wins over "war" because concepts are checked in table order.
	terms := e.Expand("nature of war")
	for _, term := range terms {
		if term == "battle" {
			t.Errorf("Expand(nature of war) = %v, second concept must not fire", terms)
		}
	}
}

func TestExpandMovementTriggers(t *testing.T) {
	e := NewStaticExpander()

	tests := []struct {
		theme string
		want  string
	}{
		{"modern sculpture", "21st century"},
		{"contemporary portraits", "20th century"},
		{"ancient pottery", "classical"},
		{"historical maps", "classical"},
		{"traditional weaving", "indigenous"},
	}

	for _, tt := range tests {
		terms := e.Expand(tt.theme)
		found := false
		for _, term := range terms {
			if term == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("Expand(%q) = %v, want term %q", tt.theme, terms, tt.want)
		}
	}
}

func TestExpandNoDuplicates(t *testing.T) {
	e := NewStaticExpander()

	// "modern" appears both as theme word and movement term.
	terms := e.Expand("modern")
	seen := make(map[string]bool)
	for _, term := range terms {
		if seen[term] {
			t.Errorf("Expand(modern) = %v, duplicate term %q", terms, term)
		}
		seen[term] = true
	}
}

func TestExpandDeterministic(t *testing.T) {
	e := NewStaticExpander()

	first := e.Expand("family traditions")
	for i := 0; i < 10; i++ {
		if got := e.Expand("family traditions"); !reflect.DeepEqual(got, first) {
			t.Fatalf("Expand not deterministic: %v vs %v", got, first)
		}
	}
}
