// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package search runs the end-to-end discovery pipeline for one theme:
// expand the theme into search terms, query every enabled museum source,
// resolve candidates through a bounded fetch pool, classify and score the
// records, then balance the merged pool into the final result list.
//
// The pipeline is resilient by construction: a source that rate-limits or
// errors is benched or skipped for the remainder of the request, and the
// response is assembled from whatever the healthy sources returned.
package search

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/atelier/internal/cache"
	"github.com/tomtom215/atelier/internal/classify"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/expand"
	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/models"
	"github.com/tomtom215/atelier/internal/pipeline"
	"github.com/tomtom215/atelier/internal/sources"
)

// Searcher orchestrates theme searches across the configured museum
// sources. Safe for concurrent use; each Search call builds its own
// per-request state.
type Searcher struct {
	cfg         *config.SearchConfig
	pipelineCfg *config.PipelineConfig
	srcs        []sources.Source
	expander    expand.Expander
	classifier  *classify.Classifier
	novelty     cache.Novelty
}

// NewSearcher wires the pipeline stages together. novelty may be nil, in
// which case every candidate counts as fresh and nothing is recorded.
func NewSearcher(
	cfg *config.SearchConfig,
	pipelineCfg *config.PipelineConfig,
	srcs []sources.Source,
	expander expand.Expander,
	classifier *classify.Classifier,
	novelty cache.Novelty,
) *Searcher {
	return &Searcher{
		cfg:         cfg,
		pipelineCfg: pipelineCfg,
		srcs:        srcs,
		expander:    expander,
		classifier:  classifier,
		novelty:     novelty,
	}
}

// fetchTask is one candidate awaiting resolution, tagged with the source
// that produced it and the search term it matched.
type fetchTask struct {
	src  sources.Source
	cand sources.Candidate
	term string
}

// sourceState accumulates per-source results during one request. benched
// flips when the source answers HTTP 429; once benched it contributes no
// further fetches for this request.
type sourceState struct {
	status  models.SourceStatus
	benched bool
	tasks   []fetchTask
}

// Search runs the full pipeline for a theme. limit overrides the
// configured result limit when positive.
//
// Partial failures never fail the search: a benched or erroring source is
// reported in the response's Sources section while the rest contribute
// normally. The only error returned is context cancellation.
func (s *Searcher) Search(ctx context.Context, theme string, limit int) (*models.SearchResponse, error) {
	start := time.Now()
	if limit <= 0 {
		limit = s.cfg.Limit
	}

	terms := s.expander.Expand(theme)
	log := logging.Ctx(ctx)
	log.Debug().Str("theme", theme).Strs("terms", terms).Msg("Expanded search theme")

	states := s.gatherCandidates(ctx, terms)
	if err := ctx.Err(); err != nil {
		metrics.SearchesTotal.WithLabelValues("cancelled").Inc()
		return nil, err
	}

	collected := s.fetchAll(ctx, states, terms)
	if err := ctx.Err(); err != nil {
		metrics.SearchesTotal.WithLabelValues("cancelled").Inc()
		return nil, err
	}

	results := s.balance(collected, limit)

	statuses := make([]models.SourceStatus, len(states))
	for i, st := range states {
		statuses[i] = st.status
	}

	elapsed := time.Since(start)
	metrics.SearchDuration.Observe(elapsed.Seconds())
	metrics.SearchResults.Observe(float64(len(results)))
	if len(results) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues("ok").Inc()
	}

	log.Info().
		Str("theme", theme).
		Int("candidates", len(collected)).
		Int("results", len(results)).
		Dur("elapsed", elapsed).
		Msg("Search completed")

	return &models.SearchResponse{
		Theme:   theme,
		Terms:   terms,
		Total:   len(results),
		Results: results,
		Sources: statuses,
	}, nil
}

// gatherCandidates queries each source with the leading expanded terms.
// Sources run concurrently; each one owns its own state slot, so no
// locking is needed until the fetch phase.
func (s *Searcher) gatherCandidates(ctx context.Context, terms []string) []*sourceState {
	searchTerms := terms
	if len(searchTerms) > s.cfg.MaxTermsPerSource {
		searchTerms = searchTerms[:s.cfg.MaxTermsPerSource]
	}

	states := make([]*sourceState, len(s.srcs))
	var wg sync.WaitGroup
	for i, src := range s.srcs {
		states[i] = &sourceState{status: models.SourceStatus{Source: src.Name()}}
		wg.Add(1)
		go func(src sources.Source, st *sourceState) {
			defer wg.Done()
			s.searchSource(ctx, src, searchTerms, st)
		}(src, states[i])
	}
	wg.Wait()

	// Sample each source's pool down to the per-source cap. With shuffling
	// enabled every gathered candidate has an equal chance of being
	// fetched, so repeated searches rotate through large result sets
	// instead of replaying the first page the API happened to return.
	var rng *rand.Rand
	if s.pipelineCfg.Shuffle {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for _, st := range states {
		st.tasks = sampleTasks(st.tasks, s.cfg.MaxCandidatesPerSource, rng)
	}
	return states
}

// sampleTasks shuffles tasks when rng is non-nil and truncates to limit.
// A nil rng keeps the gathered order, so runs stay deterministic when
// shuffling is disabled.
func sampleTasks(tasks []fetchTask, limit int, rng *rand.Rand) []fetchTask {
	if rng != nil {
		rng.Shuffle(len(tasks), func(i, j int) {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		})
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks
}

// searchSource collects the full candidate pool from one source, deduped
// by ID; the pool is sampled down to MaxCandidatesPerSource afterwards.
// A 429 benches the source immediately; other errors skip the term and
// are reported once in the status.
func (s *Searcher) searchSource(ctx context.Context, src sources.Source, terms []string, st *sourceState) {
	log := logging.Ctx(ctx)
	seen := make(map[string]struct{})

	for _, term := range terms {
		cands, err := src.Search(ctx, term)
		if errors.Is(err, sources.ErrRateLimited) {
			st.benched = true
			st.status.RateLimited = true
			log.Warn().Str("source", src.Name()).Str("term", term).
				Msg("Source rate limited, benching for this request")
			return
		}
		if err != nil {
			st.status.Error = err.Error()
			log.Warn().Err(err).Str("source", src.Name()).Str("term", term).
				Msg("Source search failed, skipping term")
			continue
		}

		st.status.Searched += len(cands)
		for _, c := range cands {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			st.tasks = append(st.tasks, fetchTask{src: src, cand: c, term: term})
		}
	}
}

// fetchAll resolves every pending candidate through a bounded worker pool.
// Each fetch gets its own timeout. A 429 during fetching benches the
// source; its remaining tasks are skipped as workers reach them. Records
// are scored against the full expanded term list so scores stay comparable
// across sources.
func (s *Searcher) fetchAll(ctx context.Context, states []*sourceState, terms []string) []models.Artwork {
	var (
		mu        sync.Mutex
		collected []models.Artwork
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, st := range states {
		for _, task := range st.tasks {
			st, task := st, task
			g.Go(func() error {
				mu.Lock()
				benched := st.benched
				mu.Unlock()
				if benched {
					return nil
				}

				fetchCtx, cancel := context.WithTimeout(gctx, s.cfg.FetchTimeout)
				art, err := task.src.Fetch(fetchCtx, task.cand)
				cancel()

				if errors.Is(err, sources.ErrRateLimited) {
					mu.Lock()
					st.benched = true
					st.status.RateLimited = true
					mu.Unlock()
					return nil
				}
				if err != nil || art == nil {
					return nil
				}

				art.MatchedTerm = task.term
				s.classifier.Classify(art, terms)

				mu.Lock()
				st.status.Fetched++
				collected = append(collected, *art)
				mu.Unlock()
				return nil
			})
		}
	}

	// Workers never return errors; Wait only unblocks the pool.
	_ = g.Wait()
	return collected
}

// balance runs the quota balancer over the merged pool and records the
// admitted IDs in the novelty cache.
func (s *Searcher) balance(collected []models.Artwork, limit int) []models.Artwork {
	var rng *rand.Rand
	if s.pipelineCfg.Shuffle {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	balancer := pipeline.NewBalancer(s.pipelineCfg, limit, rng)

	var seenFn func(string) bool
	if s.novelty != nil {
		seenFn = s.novelty.Seen
	}
	results := balancer.Balance(collected, seenFn)

	if s.novelty != nil && len(results) > 0 {
		ids := make([]string, len(results))
		for i, art := range results {
			ids[i] = art.ID
		}
		s.novelty.MarkServed(ids)
	}
	return results
}
