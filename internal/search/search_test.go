// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package search

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/atelier/internal/classify"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/models"
	"github.com/tomtom215/atelier/internal/sources"
)

// stubExpander returns a fixed term list regardless of theme.
type stubExpander struct {
	terms []string
}

func (e *stubExpander) Expand(theme string) []string {
	return e.terms
}

// stubSource serves canned candidates per term and optionally fails.
type stubSource struct {
	name      string
	byTerm    map[string][]sources.Candidate
	searchErr map[string]error

	mu          sync.Mutex
	fetchCalls  int
	searchCalls int
	fetchedIDs  []string
}

func (s *stubSource) Name() string        { return s.name }
func (s *stubSource) DisplayName() string { return s.name }

func (s *stubSource) Search(ctx context.Context, term string) ([]sources.Candidate, error) {
	s.mu.Lock()
	s.searchCalls++
	s.mu.Unlock()
	if err, ok := s.searchErr[term]; ok {
		return nil, err
	}
	return s.byTerm[term], nil
}

func (s *stubSource) Fetch(ctx context.Context, c sources.Candidate) (*models.Artwork, error) {
	s.mu.Lock()
	s.fetchCalls++
	s.fetchedIDs = append(s.fetchedIDs, c.ID)
	s.mu.Unlock()
	if c.Artwork == nil {
		return nil, nil
	}
	art := *c.Artwork
	return &art, nil
}

func stubCandidate(source string, n int, title string) sources.Candidate {
	id := fmt.Sprintf("%s_%d", source, n)
	return sources.Candidate{
		ID: id,
		Artwork: &models.Artwork{
			ID:       id,
			Source:   source,
			Title:    title,
			Date:     "1850",
			ImageURL: "https://images.example.org/" + id + ".jpg",
		},
	}
}

// imagelessCandidate is a search hit whose record had no usable image;
// Fetch resolves it to (nil, nil).
func imagelessCandidate(source string, n int) sources.Candidate {
	return sources.Candidate{ID: fmt.Sprintf("%s_%d", source, n), Artwork: nil}
}

func testSearchConfig() *config.SearchConfig {
	return &config.SearchConfig{
		Expander:               "static",
		Limit:                  20,
		MaxTermsPerSource:      3,
		MaxCandidatesPerSource: 100,
		Workers:                4,
		FetchTimeout:           2 * time.Second,
	}
}

func testPipelineConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		ModernCutoff: 1923,
		PerSourceCap: 10,
		EraCap:       10,
		ReligiousCap: 2,
		Shuffle:      false,
	}
}

func newTestSearcher(srcs []sources.Source, terms []string) *Searcher {
	return NewSearcher(
		testSearchConfig(),
		testPipelineConfig(),
		srcs,
		&stubExpander{terms: terms},
		classify.New(1923),
		nil,
	)
}

func TestSearchHappyPath(t *testing.T) {
	src := &stubSource{
		name: "stub",
		byTerm: map[string][]sources.Candidate{
			"ocean": {
				stubCandidate("stub", 1, "The Ocean at Dawn"),
				stubCandidate("stub", 2, "Harbor Scene"),
				imagelessCandidate("stub", 3),
			},
		},
	}
	s := newTestSearcher([]sources.Source{src}, []string{"ocean"})

	resp, err := s.Search(context.Background(), "ocean", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2 (imageless candidate must be dropped)", resp.Total)
	}
	if resp.Theme != "ocean" {
		t.Errorf("Theme = %q, want %q", resp.Theme, "ocean")
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("Sources count = %d, want 1", len(resp.Sources))
	}
	st := resp.Sources[0]
	if st.Searched != 3 {
		t.Errorf("Searched = %d, want 3", st.Searched)
	}
	if st.Fetched != 2 {
		t.Errorf("Fetched = %d, want 2", st.Fetched)
	}
	if st.RateLimited || st.Error != "" {
		t.Errorf("unexpected failure status: %+v", st)
	}
	for _, art := range resp.Results {
		if art.MatchedTerm != "ocean" {
			t.Errorf("MatchedTerm = %q, want %q", art.MatchedTerm, "ocean")
		}
		if art.Score <= 0 && art.Title == "The Ocean at Dawn" {
			t.Errorf("title-matching record has score %v, want > 0", art.Score)
		}
	}
}

func TestSearchRateLimitedSourceIsBenched(t *testing.T) {
	limited := &stubSource{
		name: "limited",
		searchErr: map[string]error{
			"ocean": sources.ErrRateLimited,
		},
	}
	healthy := &stubSource{
		name: "healthy",
		byTerm: map[string][]sources.Candidate{
			"ocean": {stubCandidate("healthy", 1, "Seascape")},
		},
	}
	s := newTestSearcher([]sources.Source{limited, healthy}, []string{"ocean", "sea"})

	resp, err := s.Search(context.Background(), "ocean", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("Total = %d, want 1 result from the healthy source", resp.Total)
	}

	var limitedStatus, healthyStatus models.SourceStatus
	for _, st := range resp.Sources {
		switch st.Source {
		case "limited":
			limitedStatus = st
		case "healthy":
			healthyStatus = st
		}
	}
	if !limitedStatus.RateLimited {
		t.Error("limited source not flagged as rate limited")
	}
	if limitedStatus.Fetched != 0 {
		t.Errorf("limited source Fetched = %d, want 0", limitedStatus.Fetched)
	}
	if healthyStatus.Fetched != 1 {
		t.Errorf("healthy source Fetched = %d, want 1", healthyStatus.Fetched)
	}
	// Benching stops further term queries too.
	if limited.searchCalls != 1 {
		t.Errorf("limited source searched %d times, want 1", limited.searchCalls)
	}
}

func TestSearchFailedTermIsSkipped(t *testing.T) {
	src := &stubSource{
		name: "flaky",
		byTerm: map[string][]sources.Candidate{
			"sea": {stubCandidate("flaky", 1, "Waves")},
		},
		searchErr: map[string]error{
			"ocean": fmt.Errorf("%w: HTTP 500", sources.ErrFetchFailed),
		},
	}
	s := newTestSearcher([]sources.Source{src}, []string{"ocean", "sea"})

	resp, err := s.Search(context.Background(), "ocean", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("Total = %d, want 1 (second term should still be queried)", resp.Total)
	}
	if resp.Sources[0].Error == "" {
		t.Error("source status should report the failed term's error")
	}
	if src.searchCalls != 2 {
		t.Errorf("searchCalls = %d, want 2", src.searchCalls)
	}
}

func TestSearchTermAndCandidateCaps(t *testing.T) {
	byTerm := make(map[string][]sources.Candidate)
	for i, term := range []string{"a", "b", "c", "d"} {
		byTerm[term] = []sources.Candidate{stubCandidate("stub", i, "Work "+term)}
	}
	src := &stubSource{name: "stub", byTerm: byTerm}

	s := newTestSearcher([]sources.Source{src}, []string{"a", "b", "c", "d"})
	s.cfg.MaxCandidatesPerSource = 2

	resp, err := s.Search(context.Background(), "a", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// Only the first MaxTermsPerSource (3) terms are queried and the
	// gathered pool is sampled down to the candidate cap of 2.
	if src.searchCalls > 3 {
		t.Errorf("searchCalls = %d, want at most 3", src.searchCalls)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2 (candidate cap)", resp.Total)
	}
}

func TestSearchSamplesCandidatePoolBeforeFetching(t *testing.T) {
	// A source with a stable result ordering returns far more candidates
	// than the per-source cap. Sampling must draw from the whole pool, not
	// fetch the same leading slice of the API response on every request.
	const poolSize = 200

	cands := make([]sources.Candidate, poolSize)
	for i := range cands {
		cands[i] = stubCandidate("stub", i, fmt.Sprintf("Work %03d", i))
	}
	src := &stubSource{
		name:   "stub",
		byTerm: map[string][]sources.Candidate{"ocean": cands},
	}

	s := newTestSearcher([]sources.Source{src}, []string{"ocean"})
	s.pipelineCfg.Shuffle = true

	if _, err := s.Search(context.Background(), "ocean", 0); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if got := len(src.fetchedIDs); got != 100 {
		t.Fatalf("fetched %d candidates, want 100 (per-source cap)", got)
	}
	var beyondFirstPage int
	for _, id := range src.fetchedIDs {
		var n int
		if _, err := fmt.Sscanf(id, "stub_%d", &n); err != nil {
			t.Fatalf("unexpected candidate id %q: %v", id, err)
		}
		if n >= 100 {
			beyondFirstPage++
		}
	}
	if beyondFirstPage == 0 {
		t.Error("no candidate beyond the first 100 was fetched, want a sample across the full pool")
	}
}

func TestSearchDedupesCandidatesAcrossTerms(t *testing.T) {
	dup := stubCandidate("stub", 1, "Repeated Work")
	src := &stubSource{
		name: "stub",
		byTerm: map[string][]sources.Candidate{
			"a": {dup},
			"b": {dup, stubCandidate("stub", 2, "Other Work")},
		},
	}
	s := newTestSearcher([]sources.Source{src}, []string{"a", "b"})

	resp, err := s.Search(context.Background(), "a", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2 distinct records", resp.Total)
	}
	if src.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want 2 (duplicate must not be fetched twice)", src.fetchCalls)
	}
}

func TestSearchLimitOverride(t *testing.T) {
	cands := make([]sources.Candidate, 0, 8)
	for i := 0; i < 8; i++ {
		cands = append(cands, stubCandidate("stub", i, fmt.Sprintf("Work %d", i)))
	}
	src := &stubSource{name: "stub", byTerm: map[string][]sources.Candidate{"a": cands}}

	s := newTestSearcher([]sources.Source{src}, []string{"a"})
	s.pipelineCfg.PerSourceCap = 100

	resp, err := s.Search(context.Background(), "a", 3)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3 (request limit override)", resp.Total)
	}
}

// recordingNovelty remembers served IDs and reports them seen afterwards.
type recordingNovelty struct {
	mu     sync.Mutex
	served map[string]bool
}

func (n *recordingNovelty) Seen(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.served[id]
}

func (n *recordingNovelty) MarkServed(ids []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, id := range ids {
		n.served[id] = true
	}
}

func (n *recordingNovelty) CleanupExpired() int { return 0 }
func (n *recordingNovelty) Close() error        { return nil }

func TestSearchMarksServedResults(t *testing.T) {
	src := &stubSource{
		name: "stub",
		byTerm: map[string][]sources.Candidate{
			"a": {
				stubCandidate("stub", 1, "First"),
				stubCandidate("stub", 2, "Second"),
			},
		},
	}
	nov := &recordingNovelty{served: make(map[string]bool)}

	s := newTestSearcher([]sources.Source{src}, []string{"a"})
	s.novelty = nov

	resp, err := s.Search(context.Background(), "a", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	for _, art := range resp.Results {
		if !nov.Seen(art.ID) {
			t.Errorf("served record %s not marked in novelty cache", art.ID)
		}
	}
}

func TestSearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &stubSource{name: "stub"}
	s := newTestSearcher([]sources.Source{src}, []string{"a"})

	if _, err := s.Search(ctx, "a", 0); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
