// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/models"
)

// maxSearchBodySize caps the request body for POST /api/v1/search.
const maxSearchBodySize = 64 * 1024

// Search handles POST /api/v1/search with a JSON body:
//
//	{"theme": "ocean", "limit": 20}
//
// An empty or missing theme returns 400 VALIDATION_ERROR. An empty
// result set is still a 200: it means no source had matching works, not
// that the request failed.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}

	h.runSearch(w, r, &req)
}

// SearchGet handles GET /api/v1/search?theme=ocean&limit=20, the
// query-string twin of the POST endpoint for easy browser testing.
func (h *Handler) SearchGet(w http.ResponseWriter, r *http.Request) {
	req := models.SearchRequest{
		Theme: r.URL.Query().Get("theme"),
		Limit: getIntParam(r, "limit", 0),
	}

	h.runSearch(w, r, &req)
}

func (h *Handler) runSearch(w http.ResponseWriter, r *http.Request, req *models.SearchRequest) {
	req.Theme = strings.TrimSpace(req.Theme)

	if apiErr := validateRequest(req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("theme", sanitizeLogValue(req.Theme)).
		Int("limit", req.Limit).
		Msg("Search request")

	start := time.Now()
	result, err := h.searcher.Search(r.Context(), req.Theme, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "SEARCH_ERROR", "Search failed", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   result,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
