// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package api implements the HTTP surface: the search endpoints, source
// and health introspection, and the Chi router wiring them together.
package api

import (
	"time"

	"github.com/tomtom215/atelier/internal/cache"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/search"
	"github.com/tomtom215/atelier/internal/sources"
)

// Version is the reported application version. Overridden at build time
// via -ldflags "-X github.com/tomtom215/atelier/internal/api.Version=...".
var Version = "dev"

// Handler holds the dependencies the HTTP handlers need.
type Handler struct {
	config    *config.Config
	searcher  *search.Searcher
	registry  *sources.Registry
	novelty   cache.Novelty
	startTime time.Time
}

// NewHandler creates the handler set. novelty may be nil when the novelty
// cache is disabled.
func NewHandler(cfg *config.Config, searcher *search.Searcher, registry *sources.Registry, novelty cache.Novelty) *Handler {
	return &Handler{
		config:    cfg,
		searcher:  searcher,
		registry:  registry,
		novelty:   novelty,
		startTime: time.Now(),
	}
}
