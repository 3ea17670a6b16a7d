// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package cache provides the novelty cache: a bounded record of artwork IDs
// served recently, so repeated searches for the same theme rotate through
// the candidate pool instead of replaying the same top-scored records.
package cache

import (
	"fmt"

	"github.com/tomtom215/atelier/internal/config"
)

// Novelty tracks recently served artwork IDs across requests.
// Implementations must be safe for concurrent use.
type Novelty interface {
	// Seen reports whether the ID was served within the TTL window.
	// Checking must not refresh the entry's TTL.
	Seen(id string) bool

	// MarkServed records IDs that were just returned to a client.
	MarkServed(ids []string)

	// CleanupExpired drops expired entries and returns how many were
	// removed. Called periodically by the janitor service.
	CleanupExpired() int

	// Close releases any underlying resources.
	Close() error
}

// New builds the configured novelty backend. Returns (nil, nil) when the
// cache is disabled; callers treat a nil cache as "everything is novel".
func New(cfg *config.NoveltyConfig) (Novelty, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case "memory":
		return NewNoveltyLRU(cfg.Capacity, cfg.TTL), nil
	case "badger":
		return NewBadgerNovelty(cfg.Path, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown novelty backend %q", cfg.Backend)
	}
}
