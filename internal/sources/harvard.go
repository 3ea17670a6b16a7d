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

// harvardSearchResponse is the payload of GET /object on the Harvard Art
// Museums API. Like AIC, records arrive fully populated.
type harvardSearchResponse struct {
	Info struct {
		TotalRecords int `json:"totalrecords"`
	} `json:"info"`
	Records []harvardRecord `json:"records"`
}

type harvardRecord struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Dated           string `json:"dated"`
	Culture         string `json:"culture"`
	Division        string `json:"division"`
	Classification  string `json:"classification"`
	Medium          string `json:"medium"`
	Description     string `json:"description"`
	PrimaryImageURL string `json:"primaryimageurl"`
	URL             string `json:"url"`
	People          []struct {
		Name string `json:"name"`
	} `json:"people"`
}

const harvardSearchLimit = 50

// HarvardSource queries the Harvard Art Museums API. The API requires a
// free key, so the source is only registered when one is configured.
//
// API reference: https://github.com/harvardartmuseums/api-docs
type HarvardSource struct {
	baseURL string
	apiKey  string
	api     *apiClient
}

// NewHarvardSource creates the Harvard client from configuration.
func NewHarvardSource(cfg *config.SourcesConfig) *HarvardSource {
	return &HarvardSource{
		baseURL: cfg.Harvard.BaseURL,
		apiKey:  cfg.Harvard.APIKey,
		api:     newAPIClient("harvard", cfg),
	}
}

// Name implements Source.
func (s *HarvardSource) Name() string { return "harvard" }

// DisplayName implements Source.
func (s *HarvardSource) DisplayName() string { return "Harvard Art Museums" }

// Search queries the object endpoint, restricted to records with images.
func (s *HarvardSource) Search(ctx context.Context, term string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("apikey", s.apiKey)
	params.Set("q", term)
	params.Set("size", strconv.Itoa(harvardSearchLimit))
	params.Set("hasimage", "1")
	reqURL := fmt.Sprintf("%s/object?%s", s.baseURL, params.Encode())

	var result harvardSearchResponse
	if err := s.api.getJSON(ctx, "search", reqURL, &result); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(result.Records))
	for i := range result.Records {
		candidates = append(candidates, Candidate{
			ID:      strconv.Itoa(result.Records[i].ID),
			Artwork: s.mapArtwork(&result.Records[i]),
		})
	}
	return candidates, nil
}

// Fetch validates the record attached at search time.
func (s *HarvardSource) Fetch(_ context.Context, c Candidate) (*models.Artwork, error) {
	if c.Artwork == nil || !validImageURL(c.Artwork.ImageURL) {
		return nil, nil
	}
	return c.Artwork, nil
}

func (s *HarvardSource) mapArtwork(r *harvardRecord) *models.Artwork {
	if !validImageURL(r.PrimaryImageURL) {
		return nil
	}

	title := r.Title
	if title == "" {
		title = "Untitled"
	}

	artist := ""
	if len(r.People) > 0 {
		artist = r.People[0].Name
	}

	return &models.Artwork{
		ID:             combinedID(s.Name(), strconv.Itoa(r.ID)),
		Source:         s.Name(),
		SourceName:     s.DisplayName(),
		Title:          title,
		Artist:         artist,
		Date:           r.Dated,
		Medium:         r.Medium,
		Culture:        r.Culture,
		Department:     r.Division,
		Classification: r.Classification,
		Description:    r.Description,
		ImageURL:       r.PrimaryImageURL,
		SourceURL:      r.URL,
	}
}
