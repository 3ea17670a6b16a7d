// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/atelier/internal/models"
	"github.com/tomtom215/atelier/internal/sources"
)

// Sources handles GET /api/v1/sources. It lists every known museum
// source with its configured state, plus the live circuit breaker state
// for the active ones.
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	infos := sources.Describe(&h.config.Sources)

	breakers := make(map[string]string, h.registry.Len())
	for _, src := range h.registry.Sources() {
		breakers[src.Name()] = src.State()
	}

	respondJSONCached(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"sources":        infos,
			"active":         h.registry.Len(),
			"breaker_states": breakers,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
