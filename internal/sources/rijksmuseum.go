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

// rijksSearchResponse is the payload of GET /collection on the Rijksmuseum
// API. The basic search result carries the web image and the long title,
// which embeds the dating ("..., 1642").
type rijksSearchResponse struct {
	Count      int            `json:"count"`
	ArtObjects []rijksArtwork `json:"artObjects"`
}

type rijksArtwork struct {
	ObjectNumber          string `json:"objectNumber"`
	Title                 string `json:"title"`
	LongTitle             string `json:"longTitle"`
	PrincipalOrFirstMaker string `json:"principalOrFirstMaker"`
	WebImage              *struct {
		URL string `json:"url"`
	} `json:"webImage"`
	Links struct {
		Web string `json:"web"`
	} `json:"links"`
}

const rijksSearchLimit = 50

// RijksSource queries the Rijksmuseum collection API. Requires a free API
// key; registered only when one is configured.
//
// API reference: https://data.rijksmuseum.nl/object-metadata/api/
type RijksSource struct {
	baseURL string
	apiKey  string
	api     *apiClient
}

// NewRijksSource creates the Rijksmuseum client from configuration.
func NewRijksSource(cfg *config.SourcesConfig) *RijksSource {
	return &RijksSource{
		baseURL: cfg.Rijksmuseum.BaseURL,
		apiKey:  cfg.Rijksmuseum.APIKey,
		api:     newAPIClient("rijksmuseum", cfg),
	}
}

// Name implements Source.
func (s *RijksSource) Name() string { return "rijksmuseum" }

// DisplayName implements Source.
func (s *RijksSource) DisplayName() string { return "Rijksmuseum" }

// Search queries the collection endpoint, image-only.
func (s *RijksSource) Search(ctx context.Context, term string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", term)
	params.Set("ps", strconv.Itoa(rijksSearchLimit))
	params.Set("imgonly", "True")
	reqURL := fmt.Sprintf("%s/collection?%s", s.baseURL, params.Encode())

	var result rijksSearchResponse
	if err := s.api.getJSON(ctx, "search", reqURL, &result); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(result.ArtObjects))
	for i := range result.ArtObjects {
		candidates = append(candidates, Candidate{
			ID:      result.ArtObjects[i].ObjectNumber,
			Artwork: s.mapArtwork(&result.ArtObjects[i]),
		})
	}
	return candidates, nil
}

// Fetch validates the record attached at search time.
func (s *RijksSource) Fetch(_ context.Context, c Candidate) (*models.Artwork, error) {
	if c.Artwork == nil || !validImageURL(c.Artwork.ImageURL) {
		return nil, nil
	}
	return c.Artwork, nil
}

func (s *RijksSource) mapArtwork(a *rijksArtwork) *models.Artwork {
	if a.WebImage == nil || !validImageURL(a.WebImage.URL) {
		return nil
	}

	title := a.Title
	if title == "" {
		title = "Untitled"
	}

	return &models.Artwork{
		ID:         combinedID(s.Name(), a.ObjectNumber),
		Source:     s.Name(),
		SourceName: s.DisplayName(),
		Title:      title,
		Artist:     a.PrincipalOrFirstMaker,
		// The basic payload has no dedicated date field; the long title
		// ends with the dating and the year parser picks it up from there.
		Date:      a.LongTitle,
		ImageURL:  a.WebImage.URL,
		SourceURL: a.Links.Web,
	}
}
