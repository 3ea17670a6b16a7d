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

// aicSearchResponse is the payload of GET /artworks/search on the Art
// Institute of Chicago API. The requested fields come back inline, so no
// per-object detail request is needed.
type aicSearchResponse struct {
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
	Data []aicArtwork `json:"data"`
}

type aicArtwork struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	ArtistDisplay   string `json:"artist_display"`
	DateDisplay     string `json:"date_display"`
	MediumDisplay   string `json:"medium_display"`
	ImageID         string `json:"image_id"`
	DepartmentTitle string `json:"department_title"`
}

// aicFields is the field list requested from the AIC search endpoint.
const aicFields = "id,title,artist_display,date_display,medium_display,image_id,department_title"

// aicSearchLimit is the page size per search term. The AIC API caps
// requests at 100.
const aicSearchLimit = 50

// AICSource queries the Art Institute of Chicago API. Search returns full
// records in one call; image URLs are constructed from the IIIF image ID.
//
// API reference: https://api.artic.edu/docs/
type AICSource struct {
	baseURL string
	api     *apiClient
}

// NewAICSource creates the AIC client from configuration.
func NewAICSource(cfg *config.SourcesConfig) *AICSource {
	return &AICSource{
		baseURL: cfg.AIC.BaseURL,
		api:     newAPIClient("aic", cfg),
	}
}

// Name implements Source.
func (s *AICSource) Name() string { return "aic" }

// DisplayName implements Source.
func (s *AICSource) DisplayName() string { return "Art Institute of Chicago" }

// Search queries the AIC search endpoint. Records arrive fully populated,
// so each candidate carries its artwork and Fetch does no network work.
func (s *AICSource) Search(ctx context.Context, term string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("q", term)
	params.Set("limit", strconv.Itoa(aicSearchLimit))
	params.Set("fields", aicFields)
	reqURL := fmt.Sprintf("%s/artworks/search?%s", s.baseURL, params.Encode())

	var result aicSearchResponse
	if err := s.api.getJSON(ctx, "search", reqURL, &result); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(result.Data))
	for i := range result.Data {
		art := s.mapArtwork(&result.Data[i])
		candidates = append(candidates, Candidate{
			ID:      strconv.Itoa(result.Data[i].ID),
			Artwork: art,
		})
	}
	return candidates, nil
}

// Fetch validates the record attached at search time. Records without an
// image ID were mapped to nil and are skipped here.
func (s *AICSource) Fetch(_ context.Context, c Candidate) (*models.Artwork, error) {
	if c.Artwork == nil || !validImageURL(c.Artwork.ImageURL) {
		return nil, nil
	}
	return c.Artwork, nil
}

// mapArtwork converts an AIC payload into a normalized record, or nil when
// the record has no image.
func (s *AICSource) mapArtwork(a *aicArtwork) *models.Artwork {
	if a.ImageID == "" {
		return nil
	}

	title := a.Title
	if title == "" {
		title = "Untitled"
	}

	id := strconv.Itoa(a.ID)
	return &models.Artwork{
		ID:         combinedID(s.Name(), id),
		Source:     s.Name(),
		SourceName: s.DisplayName(),
		Title:      title,
		Artist:     a.ArtistDisplay,
		Date:       a.DateDisplay,
		Medium:     a.MediumDisplay,
		Department: a.DepartmentTitle,
		ImageURL:   aicImageURL(a.ImageID),
		SourceURL:  fmt.Sprintf("https://www.artic.edu/artworks/%s", id),
	}
}

// aicImageURL builds the IIIF image URL for an AIC image ID at the
// recommended 843px width.
func aicImageURL(imageID string) string {
	return fmt.Sprintf("https://www.artic.edu/iiif/2/%s/full/843,/0/default.jpg", imageID)
}
