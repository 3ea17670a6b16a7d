// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package models

// Artwork is the normalized record produced from any museum source.
// All sources map their native payloads into this shape before scoring
// and balancing. ID is globally unique across sources in the form
// "{source}_{nativeID}" (e.g. "met_436535", "aic_28560").
type Artwork struct {
	ID             string  `json:"id"`
	Source         string  `json:"source"`
	SourceName     string  `json:"source_name"`
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	Date           string  `json:"date"`
	Medium         string  `json:"medium,omitempty"`
	Culture        string  `json:"culture,omitempty"`
	Department     string  `json:"department,omitempty"`
	Classification string  `json:"classification,omitempty"`
	Period         string  `json:"period,omitempty"`
	ObjectName     string  `json:"object_name,omitempty"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"image_url"`
	SourceURL      string  `json:"source_url"`
	MatchedTerm    string  `json:"matched_term,omitempty"`
	Score          float64 `json:"score"`

	// Year is the parsed creation year. YearKnown distinguishes a genuine
	// year 0 from "no parseable year in the date string".
	Year      int  `json:"year,omitempty"`
	YearKnown bool `json:"year_known"`

	IsModern    bool `json:"is_modern"`
	IsReligious bool `json:"is_religious"`
}

// SearchRequest is the payload for POST /api/v1/search. Theme is the only
// required field; Limit defaults to the configured search limit.
type SearchRequest struct {
	Theme string `json:"theme" validate:"required,min=1,max=200"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// SourceStatus reports what happened at one museum source during a search.
// Partial failures are normal: a rate-limited or broken source is reported
// here while the remaining sources still contribute results.
type SourceStatus struct {
	Source      string `json:"source"`
	Searched    int    `json:"searched"`
	Fetched     int    `json:"fetched"`
	RateLimited bool   `json:"rate_limited,omitempty"`
	Error       string `json:"error,omitempty"`
}

// SearchResponse is the data payload for a completed search.
type SearchResponse struct {
	Theme   string         `json:"theme"`
	Terms   []string       `json:"terms"`
	Total   int            `json:"total"`
	Results []Artwork      `json:"results"`
	Sources []SourceStatus `json:"sources"`
}

// SourceInfo describes a configured museum source for GET /api/v1/sources.
type SourceInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Enabled     bool   `json:"enabled"`
	RequiresKey bool   `json:"requires_key"`
}
