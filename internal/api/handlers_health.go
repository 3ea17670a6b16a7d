// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/atelier/internal/models"
)

// Health handles GET /api/v1/health. The service is degraded when no
// museum source is active or when every breaker is open.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	breakers := make(map[string]string, h.registry.Len())
	allOpen := h.registry.Len() > 0
	for _, src := range h.registry.Sources() {
		state := src.State()
		breakers[src.Name()] = state
		if state != "open" {
			allOpen = false
		}
	}

	status := "healthy"
	if h.registry.Len() == 0 || allOpen {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:         status,
		Version:        Version,
		ActiveSources:  h.registry.Len(),
		BreakerStates:  breakers,
		NoveltyEnabled: h.novelty != nil,
		Uptime:         time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /api/v1/health/live. Always 200 while the
// process is running; used as a Kubernetes liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready. Ready means at least one
// museum source is registered; 503 otherwise so load balancers stop
// routing traffic here.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.registry.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY",
			"No artwork sources are active", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":   true,
			"sources": h.registry.Len(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
