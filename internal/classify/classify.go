// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package classify derives era, religious-content, and relevance signals
// from normalized artwork records. Museum date strings are free text
// ("ca. 1850-1875", "19th century", "early 1920s"), so year extraction is
// heuristic and explicitly distinguishes "no parseable year" from year 0.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/atelier/internal/models"
)

// religiousKeywords is substring-matched against the concatenated lowered
// metadata text of a record. Matching any keyword flags the record.
var religiousKeywords = []string{
	"religious", "sacred", "divine", "biblical", "christian", "christ",
	"virgin", "saint", "madonna", "jesus", "angel", "crucifixion",
	"buddhist", "hindu", "islamic", "deity", "god", "goddess", "temple",
	"church", "mosque", "shrine", "altar", "prayer", "worship",
}

var (
	// Matches whole digit runs; only runs of exactly four digits are years.
	// This keeps "1920s" parseable while rejecting catalog numbers like "12345".
	digitRunPattern = regexp.MustCompile(`\d+`)
	centuryPattern  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)\s+century\b`)
)

// ExtractYear parses a creation year out of a museum date string.
// Rules, in order:
//   - All standalone 4-digit numbers are collected; the largest wins
//     (date ranges like "ca. 1850-1875" resolve to the end of the range).
//   - Otherwise "Nth century" resolves to the century midpoint
//     ("19th century" -> 1850).
//   - Otherwise the year is unknown and ok is false. Unknown is never
//     reported as year 0.
func ExtractYear(date string) (year int, ok bool) {
	lowered := strings.ToLower(date)

	max := 0
	for _, m := range digitRunPattern.FindAllString(lowered, -1) {
		if len(m) != 4 {
			continue
		}
		if y, err := strconv.Atoi(m); err == nil && y > max {
			max = y
		}
	}
	if max > 0 {
		return max, true
	}

	if m := centuryPattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 {
			return (n-1)*100 + 50, true
		}
	}

	return 0, false
}

// IsReligious reports whether the record's metadata suggests religious
// subject matter. Title, culture, classification, period, object name,
// department, medium and description are checked as one lowered blob.
func IsReligious(art *models.Artwork) bool {
	text := strings.ToLower(strings.Join([]string{
		art.Title,
		art.Culture,
		art.Classification,
		art.Period,
		art.ObjectName,
		art.Department,
		art.Medium,
		art.Description,
	}, " "))

	for _, keyword := range religiousKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Classifier fills the derived fields on artwork records. ModernCutoff is
// the first year counted as modern; records with unknown years are never
// modern.
type Classifier struct {
	ModernCutoff int
}

// New returns a Classifier with the given modern-era cutoff year.
func New(modernCutoff int) *Classifier {
	return &Classifier{ModernCutoff: modernCutoff}
}

// Classify sets Year, YearKnown, IsModern, IsReligious and Score on art
// in place. terms are the expanded search terms used for relevance scoring.
func (c *Classifier) Classify(art *models.Artwork, terms []string) {
	art.Year, art.YearKnown = ExtractYear(art.Date)
	art.IsModern = art.YearKnown && art.Year >= c.ModernCutoff
	art.IsReligious = IsReligious(art)
	art.Score = RelevanceScore(art, terms)
}

// RelevanceScore scores a record against the expanded terms. Each term
// contributes at most one of:
//   - 1.0 if the term appears in the title
//   - 0.5 if it appears in the descriptive metadata
//   - 0.25 if any single word of the term appears in either
//
// The sum is normalized by the term count, so the score stays in [0, 1]
// and is comparable across searches with different expansion widths.
func RelevanceScore(art *models.Artwork, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(art.Title)
	descriptive := strings.ToLower(strings.Join([]string{
		art.Medium,
		art.Culture,
		art.Department,
		art.Classification,
		art.Period,
		art.ObjectName,
		art.Description,
	}, " "))

	var total float64
	for _, term := range terms {
		t := strings.ToLower(term)
		switch {
		case strings.Contains(title, t):
			total += 1.0
		case strings.Contains(descriptive, t):
			total += 0.5
		default:
			for _, word := range strings.Fields(t) {
				if strings.Contains(title, word) || strings.Contains(descriptive, word) {
					total += 0.25
					break
				}
			}
		}
	}

	return total / float64(len(terms))
}
