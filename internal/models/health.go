// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package models

// HealthStatus is the payload for GET /api/v1/health.
//
// Status values:
//   - "healthy": at least one museum source is active
//   - "degraded": no sources are active; searches return empty results
type HealthStatus struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	ActiveSources  int               `json:"active_sources"`
	BreakerStates  map[string]string `json:"breaker_states,omitempty"`
	NoveltyEnabled bool              `json:"novelty_enabled"`
	Uptime         float64           `json:"uptime_seconds"`
}
