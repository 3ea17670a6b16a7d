// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package services

import (
	"context"
	"time"

	"github.com/tomtom215/atelier/internal/cache"
	"github.com/tomtom215/atelier/internal/logging"
)

// defaultJanitorInterval is how often expired novelty entries are swept.
const defaultJanitorInterval = 10 * time.Minute

// NoveltyJanitorService periodically sweeps expired entries from the
// novelty cache. The memory backend frees list nodes eagerly; the badger
// backend additionally reclaims value log space.
type NoveltyJanitorService struct {
	novelty  cache.Novelty
	interval time.Duration
}

// NewNoveltyJanitorService creates the janitor. interval <= 0 selects the
// default sweep interval.
func NewNoveltyJanitorService(novelty cache.Novelty, interval time.Duration) *NoveltyJanitorService {
	if interval <= 0 {
		interval = defaultJanitorInterval
	}
	return &NoveltyJanitorService{novelty: novelty, interval: interval}
}

// Serve implements suture.Service, sweeping on a fixed ticker until the
// context is canceled.
func (s *NoveltyJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed := s.novelty.CleanupExpired()
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Swept expired novelty entries")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *NoveltyJanitorService) String() string {
	return "novelty-janitor"
}
