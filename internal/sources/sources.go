// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package sources implements the museum API clients. Every client maps its
// native payloads into models.Artwork and reports failures through a small
// shared error taxonomy, so the search orchestrator can treat all museums
// uniformly.
//
// Two-phase protocol: Search returns candidates for a term, Fetch resolves
// a candidate to a full record. Sources whose search endpoint already
// returns full metadata (AIC, Harvard, Rijksmuseum) attach the record to
// the candidate and Fetch only validates it; the Met requires a second
// request per object.
package sources

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/atelier/internal/models"
)

// Sentinel errors distinguishing how a source call failed.
//
//   - ErrRateLimited: the museum answered HTTP 429. The caller must stop
//     querying that source for the remainder of the request.
//   - ErrFetchFailed: network error, timeout, non-2xx status or malformed
//     JSON. The caller skips the item (or the term) and moves on.
//
// A candidate without a usable image is not an error: Fetch returns
// (nil, nil) and the caller drops it silently.
var (
	ErrRateLimited = errors.New("rate limited by source")
	ErrFetchFailed = errors.New("source fetch failed")
)

// Candidate is one search hit awaiting resolution. Artwork is non-nil when
// the search response already carried the full record.
type Candidate struct {
	ID      string
	Artwork *models.Artwork
}

// Source is a museum collection API. Implementations must be safe for
// concurrent use; Fetch is called from a worker pool.
type Source interface {
	// Name is the short machine identifier ("met", "aic").
	Name() string

	// DisplayName is the human-readable museum name.
	DisplayName() string

	// Search returns candidates matching a single expanded term.
	Search(ctx context.Context, term string) ([]Candidate, error)

	// Fetch resolves a candidate into a normalized record. Returns
	// (nil, nil) when the candidate has no usable image and should be
	// skipped without counting as a failure.
	Fetch(ctx context.Context, c Candidate) (*models.Artwork, error)
}

// combinedID builds the globally unique record ID "{source}_{nativeID}".
func combinedID(source, nativeID string) string {
	return source + "_" + nativeID
}

// validImageURL reports whether a record's image URL is usable. Museum
// payloads sometimes carry empty strings or local file paths here.
func validImageURL(url string) bool {
	return strings.HasPrefix(url, "http")
}
