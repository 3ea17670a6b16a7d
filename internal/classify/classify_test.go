// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package classify

import (
	"testing"

	"github.com/tomtom215/atelier/internal/models"
)

func TestExtractYear(t *testing.T) {
	tests := []struct {
		date     string
		wantYear int
		wantOK   bool
	}{
		{"1889", 1889, true},
		{"ca. 1850-1875", 1875, true},
		{"ca. 1850–1875", 1875, true},
		{"19th century", 1850, true},
		{"early 20th century", 1950, true},
		{"2nd century", 150, true},
		{"1st century", 50, true},
		{"1920s", 1920, true},
		{"dated 1503, reworked 1510", 1510, true},
		{"Edo period", 0, false},
		{"", 0, false},
		{"n.d.", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			year, ok := ExtractYear(tt.date)
			if year != tt.wantYear || ok != tt.wantOK {
				t.Errorf("ExtractYear(%q) = (%d, %v), want (%d, %v)",
					tt.date, year, ok, tt.wantYear, tt.wantOK)
			}
		})
	}
}

func TestExtractYearUnknownIsNotZeroYear(t *testing.T) {
	// A record with no digits must come back ok=false, never (0, true).
	year, ok := ExtractYear("undated woodblock print")
	if ok {
		t.Errorf("ExtractYear(undated) = (%d, true), want ok=false", year)
	}
}

func TestClassifyModernCutoff(t *testing.T) {
	c := New(1923)

	tests := []struct {
		date       string
		wantModern bool
	}{
		{"1923", true},
		{"1922", false},
		{"1975", true},
		{"19th century", false},
		{"no date", false},
	}

	for _, tt := range tests {
		art := &models.Artwork{Date: tt.date}
		c.Classify(art, nil)
		if art.IsModern != tt.wantModern {
			t.Errorf("Classify date %q: IsModern = %v, want %v", tt.date, art.IsModern, tt.wantModern)
		}
	}
}

func TestIsReligious(t *testing.T) {
	tests := []struct {
		name string
		art  models.Artwork
		want bool
	}{
		{
			name: "religious title",
			art:  models.Artwork{Title: "Madonna and Child"},
			want: true,
		},
		{
			name: "secular still life",
			art:  models.Artwork{Title: "Still Life with Apples"},
			want: false,
		},
		{
			name: "religious classification",
			art:  models.Artwork{Title: "Panel fragment", Classification: "Altar decoration"},
			want: true,
		},
		{
			name: "religious department",
			art:  models.Artwork{Title: "Figure", Department: "Buddhist Art"},
			want: true,
		},
		{
			name: "religious period alongside populated fields",
			art: models.Artwork{
				Title:          "Vessel",
				Date:           "1500",
				Classification: "Metalwork",
				Period:         "Temple offering period",
			},
			want: true,
		},
		{
			name: "religious object name alongside populated fields",
			art: models.Artwork{
				Title:          "Vessel",
				Classification: "Metalwork",
				ObjectName:     "Altar vessel",
			},
			want: true,
		},
		{
			name: "keyword inside word",
			art:  models.Artwork{Title: "The Angelus"},
			want: true, // substring matching is intentionally loose
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReligious(&tt.art); got != tt.want {
				t.Errorf("IsReligious(%q) = %v, want %v", tt.art.Title, got, tt.want)
			}
		})
	}
}

func TestRelevanceScore(t *testing.T) {
	art := &models.Artwork{
		Title:  "Mountain Landscape at Dusk",
		Medium: "Oil on canvas",
	}

	// Exact title hit scores 1.0 for that term.
	score := RelevanceScore(art, []string{"landscape"})
	if score != 1.0 {
		t.Errorf("title match score = %f, want 1.0", score)
	}

	// Descriptive metadata hit scores 0.5.
	score = RelevanceScore(art, []string{"oil on canvas"})
	if score != 0.5 {
		t.Errorf("descriptive match score = %f, want 0.5", score)
	}

	// Loose word-level hit scores 0.25.
	score = RelevanceScore(art, []string{"mountain goats"})
	if score != 0.25 {
		t.Errorf("loose match score = %f, want 0.25", score)
	}

	// No hit at all scores 0.
	score = RelevanceScore(art, []string{"porcelain"})
	if score != 0 {
		t.Errorf("no match score = %f, want 0", score)
	}
}

func TestRelevanceScoreNormalized(t *testing.T) {
	art := &models.Artwork{Title: "Garden Flowers"}

	// One title hit out of four terms: 1.0 / 4.
	score := RelevanceScore(art, []string{"flowers", "pottery", "bronze", "armor"})
	if score != 0.25 {
		t.Errorf("normalized score = %f, want 0.25", score)
	}

	if score < 0 || score > 1 {
		t.Errorf("score %f outside [0, 1]", score)
	}

	if RelevanceScore(art, nil) != 0 {
		t.Error("empty term list must score 0")
	}
}
