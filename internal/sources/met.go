// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/models"
)

// metSearchResponse is the payload of GET /search on the Met collection API.
type metSearchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// metObject is the payload of GET /objects/{id}. Only the fields Atelier
// maps into a record are decoded.
type metObject struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	Medium            string `json:"medium"`
	Culture           string `json:"culture"`
	Period            string `json:"period"`
	Classification    string `json:"classification"`
	Department        string `json:"department"`
	ObjectName        string `json:"objectName"`
	PrimaryImage      string `json:"primaryImage"`
	ObjectURL         string `json:"objectURL"`
	Description       string `json:"description"`
}

// MetSource queries the Metropolitan Museum of Art collection API.
// The Met splits search and detail into two endpoints, so every candidate
// costs one extra request in Fetch.
//
// API reference: https://metmuseum.github.io/
type MetSource struct {
	baseURL string
	api     *apiClient
}

// NewMetSource creates the Met client from configuration.
func NewMetSource(cfg *config.SourcesConfig) *MetSource {
	return &MetSource{
		baseURL: cfg.Met.BaseURL,
		api:     newAPIClient("met", cfg),
	}
}

// Name implements Source.
func (s *MetSource) Name() string { return "met" }

// DisplayName implements Source.
func (s *MetSource) DisplayName() string { return "The Metropolitan Museum of Art" }

// Search queries the Met search endpoint for a term, restricted to objects
// with images. A term with zero hits returns an empty slice and no error.
func (s *MetSource) Search(ctx context.Context, term string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("q", term)
	params.Set("hasImages", "true")
	reqURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())

	var result metSearchResponse
	if err := s.api.getJSON(ctx, "search", reqURL, &result); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(result.ObjectIDs))
	for _, id := range result.ObjectIDs {
		candidates = append(candidates, Candidate{ID: strconv.Itoa(id)})
	}
	return candidates, nil
}

// Fetch retrieves the object detail for a candidate and maps it into a
// normalized record. Objects without an http image URL return (nil, nil).
func (s *MetSource) Fetch(ctx context.Context, c Candidate) (*models.Artwork, error) {
	reqURL := fmt.Sprintf("%s/objects/%s", s.baseURL, url.PathEscape(c.ID))

	var obj metObject
	if err := s.api.getJSON(ctx, "object", reqURL, &obj); err != nil {
		return nil, err
	}

	if !validImageURL(obj.PrimaryImage) {
		return nil, nil
	}

	title := obj.Title
	if title == "" {
		title = "Untitled"
	}

	// The Met uses "Unknown" as a filler value in several fields.
	culture := obj.Culture
	if culture == "Unknown" {
		culture = ""
	}
	artist := obj.ArtistDisplayName
	if artist == "Unknown" {
		artist = ""
	}

	// Fall back to the period ("Ming dynasty (1368-1644)") when the date
	// field is empty; period strings often carry a parseable year.
	date := obj.ObjectDate
	if date == "" {
		date = obj.Period
	}

	return &models.Artwork{
		ID:             combinedID(s.Name(), c.ID),
		Source:         s.Name(),
		SourceName:     s.DisplayName(),
		Title:          title,
		Artist:         artist,
		Date:           date,
		Medium:         obj.Medium,
		Culture:        culture,
		Department:     obj.Department,
		Classification: obj.Classification,
		Period:         obj.Period,
		ObjectName:     obj.ObjectName,
		Description:    obj.Description,
		ImageURL:       obj.PrimaryImage,
		SourceURL:      obj.ObjectURL,
	}, nil
}
