// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package pipeline assembles the final result list from the merged
// candidate pool: dedupe, order by relevance, then greedily admit
// candidates against per-source, per-era and religious-content quotas.
package pipeline

import (
	"math/rand"
	"sort"

	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/models"
)

// Balancer applies the result quotas. Quotas are hard: admission never
// backtracks and never relaxes a cap, so a search can legitimately return
// fewer than limit results.
type Balancer struct {
	limit        int
	perSourceCap int
	eraCap       int
	religiousCap int
	shuffle      bool
	rng          *rand.Rand
}

// NewBalancer builds a Balancer from the pipeline quotas and the result
// limit. rng randomizes the order of equal-score candidates; passing nil
// disables shuffling and makes balancing fully deterministic, which is
// what the tests rely on.
func NewBalancer(cfg *config.PipelineConfig, limit int, rng *rand.Rand) *Balancer {
	return &Balancer{
		limit:        limit,
		perSourceCap: cfg.PerSourceCap,
		eraCap:       cfg.EraCap,
		religiousCap: cfg.ReligiousCap,
		shuffle:      cfg.Shuffle,
		rng:          rng,
	}
}

// quotaCounters tracks admissions during one balancing run.
type quotaCounters struct {
	bySource  map[string]int
	modern    int
	historic  int
	religious int
}

// Balance produces the final ordered result list.
//
// Steps:
//  1. Dedupe by record ID, first occurrence wins.
//  2. Optionally shuffle, then stable-sort by score descending; the
//     shuffle only randomizes the relative order of equal scores.
//  3. When a novelty check is supplied, candidates served recently are
//     deferred behind fresh ones, so they are only admitted when the
//     result would otherwise come up short.
//  4. Greedy quota admission until limit or exhaustion.
//
// seen may be nil, in which case every candidate counts as fresh.
func (b *Balancer) Balance(candidates []models.Artwork, seen func(id string) bool) []models.Artwork {
	pool := dedupe(candidates)

	if b.shuffle && b.rng != nil {
		b.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	if seen != nil {
		fresh := make([]models.Artwork, 0, len(pool))
		stale := make([]models.Artwork, 0)
		for _, art := range pool {
			if seen(art.ID) {
				metrics.NoveltyCacheHits.WithLabelValues("hit").Inc()
				stale = append(stale, art)
			} else {
				metrics.NoveltyCacheHits.WithLabelValues("miss").Inc()
				fresh = append(fresh, art)
			}
		}
		pool = append(fresh, stale...)
	}

	counters := quotaCounters{bySource: make(map[string]int)}
	results := make([]models.Artwork, 0, b.limit)

	for _, art := range pool {
		if len(results) >= b.limit {
			break
		}
		if quota, ok := b.admit(&art, &counters); !ok {
			metrics.BalancerRejections.WithLabelValues(quota).Inc()
			continue
		}
		results = append(results, art)
	}

	return results
}

// admit checks every quota for a candidate and, when all pass, commits the
// counter updates. Returns the name of the violated quota otherwise.
func (b *Balancer) admit(art *models.Artwork, c *quotaCounters) (string, bool) {
	if c.bySource[art.Source] >= b.perSourceCap {
		return "source", false
	}

	// Unknown-year records compete in the historic bucket: they are
	// definitionally not modern.
	if art.IsModern {
		if c.modern >= b.eraCap {
			return "era", false
		}
	} else {
		if c.historic >= b.eraCap {
			return "era", false
		}
	}

	if art.IsReligious && c.religious >= b.religiousCap {
		return "religious", false
	}

	c.bySource[art.Source]++
	if art.IsModern {
		c.modern++
	} else {
		c.historic++
	}
	if art.IsReligious {
		c.religious++
	}
	return "", true
}

// dedupe removes duplicate record IDs, keeping the first occurrence.
func dedupe(candidates []models.Artwork) []models.Artwork {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]models.Artwork, 0, len(candidates))
	for _, art := range candidates {
		if _, ok := seen[art.ID]; ok {
			continue
		}
		seen[art.ID] = struct{}{}
		out = append(out, art)
	}
	return out
}
