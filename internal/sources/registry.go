// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package sources

import (
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/models"
)

// Registry holds the configured museum sources, each wrapped in its own
// circuit breaker. Built once at startup; safe for concurrent reads.
type Registry struct {
	sources []*BreakerSource
}

// NewRegistry builds the source set from configuration. Open sources (Met,
// AIC) register when enabled; key-gated sources additionally require an
// API key. An enabled keyed source without a key is skipped with a
// warning rather than failing startup.
func NewRegistry(cfg *config.SourcesConfig) *Registry {
	r := &Registry{}

	if cfg.Met.Enabled {
		r.sources = append(r.sources, WithBreaker(NewMetSource(cfg), cfg))
	}
	if cfg.AIC.Enabled {
		r.sources = append(r.sources, WithBreaker(NewAICSource(cfg), cfg))
	}
	if cfg.Harvard.Enabled {
		if cfg.Harvard.APIKey != "" {
			r.sources = append(r.sources, WithBreaker(NewHarvardSource(cfg), cfg))
		} else {
			logging.Warn().Str("source", "harvard").
				Msg("Source enabled without an API key, treating as disabled")
		}
	}
	if cfg.Rijksmuseum.Enabled {
		if cfg.Rijksmuseum.APIKey != "" {
			r.sources = append(r.sources, WithBreaker(NewRijksSource(cfg), cfg))
		} else {
			logging.Warn().Str("source", "rijksmuseum").
				Msg("Source enabled without an API key, treating as disabled")
		}
	}

	for _, s := range r.sources {
		logging.Info().Str("source", s.Name()).Msg("Registered artwork source")
	}

	return r
}

// Sources returns the active sources in registration order.
func (r *Registry) Sources() []*BreakerSource {
	return r.sources
}

// Len returns the number of active sources.
func (r *Registry) Len() int {
	return len(r.sources)
}

// Describe lists all known sources, active or not, for the sources API
// endpoint.
func Describe(cfg *config.SourcesConfig) []models.SourceInfo {
	return []models.SourceInfo{
		{
			Name:        "met",
			DisplayName: "The Metropolitan Museum of Art",
			Enabled:     cfg.Met.Enabled,
			RequiresKey: false,
		},
		{
			Name:        "aic",
			DisplayName: "Art Institute of Chicago",
			Enabled:     cfg.AIC.Enabled,
			RequiresKey: false,
		},
		{
			Name:        "harvard",
			DisplayName: "Harvard Art Museums",
			Enabled:     cfg.Harvard.Enabled && cfg.Harvard.APIKey != "",
			RequiresKey: true,
		},
		{
			Name:        "rijksmuseum",
			DisplayName: "Rijksmuseum",
			Enabled:     cfg.Rijksmuseum.Enabled && cfg.Rijksmuseum.APIKey != "",
			RequiresKey: true,
		},
	}
}
