// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package expand turns a free-text search theme into an ordered list of
// museum search terms. Expansion is pure and deterministic: the original
// theme always comes first, followed by concept keywords and era terms
// matched from static tables.
package expand

import (
	"strings"
)

// Expander produces search terms for a theme. Implementations must be pure:
// the same theme always yields the same terms, with no duplicates and the
// original theme first.
type Expander interface {
	Expand(theme string) []string
}

// concept pairs a theme concept with its related search keywords. Matching
// is substring-based against the lowered theme, checking the concept name
// and each of its keywords.
type concept struct {
	name  string
	terms []string
}

// concepts is ordered; the first matching concept wins and no further
// concepts are consulted.
var concepts = []concept{
	{"nature", []string{"landscape", "flowers", "animals", "birds", "trees", "garden"}},
	{"people", []string{"portrait", "figure", "human", "face", "crowd"}},
	{"culture", []string{"ceremony", "ritual", "tradition", "festival", "customs"}},
	{"religion", []string{"sacred", "divine", "worship", "deity", "spiritual"}},
	{"daily life", []string{"scene", "activity", "domestic", "everyday"}},
	{"war", []string{"battle", "conflict", "military", "warrior", "combat"}},
	{"love", []string{"romance", "couple", "embrace", "affection"}},
	{"death", []string{"memorial", "tomb", "funeral", "mourning"}},
	{"power", []string{"royal", "ruler", "throne", "crown", "authority"}},
	{"work", []string{"labor", "craft", "occupation", "trade", "skill"}},
	{"education", []string{"learning", "teaching", "school", "study", "knowledge"}},
	{"family", []string{"mother", "father", "child", "parent", "household"}},
	{"identity", []string{"self", "portrait", "personal", "individual"}},
	{"mythology", []string{"myth", "legend", "god", "hero", "folklore"}},
	{"social justice", []string{"protest", "rights", "equality", "freedom", "justice"}},
	{"gender", []string{"women", "men", "feminine", "masculine", "identity"}},
	{"race", []string{"ethnic", "diversity", "cultural", "identity", "heritage"}},
}

// movementTrigger adds era and movement terms when trigger words appear in
// the theme. Triggers are checked in order and at most one fires.
type movementTrigger struct {
	triggers []string
	terms    []string
}

var movementTriggers = []movementTrigger{
	{[]string{"modern", "contemporary"}, []string{"modern", "contemporary", "20th century", "21st century"}},
	{[]string{"ancient", "historical"}, []string{"ancient", "historical", "classical"}},
	{[]string{"traditional", "cultural"}, []string{"traditional", "indigenous", "folk"}},
}

// StaticExpander expands themes using the built-in concept and movement
// tables. It is stateless and safe for concurrent use.
type StaticExpander struct{}

// NewStaticExpander returns the table-driven expander.
func NewStaticExpander() *StaticExpander {
	return &StaticExpander{}
}

// Expand returns the ordered, duplicate-free term list for theme.
// The original theme is always the first term, so a theme with no table
// matches still yields one usable search term.
func (e *StaticExpander) Expand(theme string) []string {
	terms := []string{theme}
	themeLower := strings.ToLower(theme)

	for _, c := range concepts {
		if matchesConcept(themeLower, c) {
			terms = append(terms, c.terms...)
			break
		}
	}

	for _, m := range movementTriggers {
		if containsAny(themeLower, m.triggers) {
			terms = append(terms, m.terms...)
			break
		}
	}

	return dedupe(terms)
}

func matchesConcept(themeLower string, c concept) bool {
	if strings.Contains(themeLower, c.name) {
		return true
	}
	return containsAny(themeLower, c.terms)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate terms while preserving first-occurrence order.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	unique := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}
	return unique
}
