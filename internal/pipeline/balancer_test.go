// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package pipeline

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/models"
)

func testPipelineConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		ModernCutoff: 1923,
		PerSourceCap: 10,
		EraCap:       10,
		ReligiousCap: 2,
		Shuffle:      false,
	}
}

// mkArt builds a minimal candidate for balancing tests.
func mkArt(source, id string, score float64, modern, religious bool) models.Artwork {
	return models.Artwork{
		ID:          source + "_" + id,
		Source:      source,
		Title:       id,
		Score:       score,
		IsModern:    modern,
		IsReligious: religious,
	}
}

func TestBalanceOrdersByScoreDescending(t *testing.T) {
	b := NewBalancer(testPipelineConfig(), 20, nil)

	candidates := []models.Artwork{
		mkArt("met", "low", 0.1, false, false),
		mkArt("met", "high", 0.9, false, false),
		mkArt("aic", "mid", 0.5, false, false),
	}

	results := b.Balance(candidates, nil)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].ID != "met_high" || results[1].ID != "aic_mid" || results[2].ID != "met_low" {
		t.Errorf("order = %v", []string{results[0].ID, results[1].ID, results[2].ID})
	}
}

func TestBalanceDedupesFirstWins(t *testing.T) {
	b := NewBalancer(testPipelineConfig(), 20, nil)

	first := mkArt("met", "1", 0.5, false, false)
	first.Title = "kept"
	dup := mkArt("met", "1", 0.9, false, false)
	dup.Title = "dropped"

	results := b.Balance([]models.Artwork{first, dup}, nil)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Title != "kept" {
		t.Errorf("Title = %q, first occurrence must win", results[0].Title)
	}
}

func TestBalanceReligiousCap(t *testing.T) {
	b := NewBalancer(testPipelineConfig(), 20, nil)

	var candidates []models.Artwork
	for i := 0; i < 5; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("r%d", i), 0.9, false, true))
	}
	candidates = append(candidates, mkArt("met", "secular", 0.1, false, false))

	results := b.Balance(candidates, nil)

	religious := 0
	for _, art := range results {
		if art.IsReligious {
			religious++
		}
	}
	if religious != 2 {
		t.Errorf("religious results = %d, want 2 (cap)", religious)
	}
	// The lower-scored secular work still gets in past the rejected
	// religious candidates.
	if len(results) != 3 {
		t.Errorf("len(results) = %d, want 3", len(results))
	}
}

func TestBalanceSourceFairness(t *testing.T) {
	// One source floods 25 high-score candidates, another offers 5.
	cfg := testPipelineConfig()
	cfg.EraCap = 100 // keep only the source quota in play
	b := NewBalancer(cfg, 20, nil)

	var candidates []models.Artwork
	for i := 0; i < 25; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("m%d", i), 0.9, false, false))
	}
	for i := 0; i < 5; i++ {
		candidates = append(candidates, mkArt("aic", fmt.Sprintf("a%d", i), 0.2, false, false))
	}

	results := b.Balance(candidates, nil)

	counts := map[string]int{}
	for _, art := range results {
		counts[art.Source]++
	}
	if counts["met"] > 10 {
		t.Errorf("met results = %d, must not exceed per-source cap 10", counts["met"])
	}
	if counts["aic"] != 5 {
		t.Errorf("aic results = %d, want all 5", counts["aic"])
	}
}

func TestBalanceEraCapUnknownYearCountsHistoric(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.EraCap = 3
	cfg.PerSourceCap = 100
	b := NewBalancer(cfg, 20, nil)

	var candidates []models.Artwork
	// 2 dated historic + 2 unknown-year compete for 3 historic slots.
	for i := 0; i < 2; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("h%d", i), 0.9, false, false))
	}
	for i := 0; i < 2; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("u%d", i), 0.8, false, false))
	}
	for i := 0; i < 2; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("m%d", i), 0.7, true, false))
	}

	results := b.Balance(candidates, nil)

	historic := 0
	for _, art := range results {
		if !art.IsModern {
			historic++
		}
	}
	if historic != 3 {
		t.Errorf("historic results = %d, want era cap 3", historic)
	}
	if len(results) != 5 {
		t.Errorf("len(results) = %d, want 5 (3 historic + 2 modern)", len(results))
	}
}

func TestBalanceLimit(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.PerSourceCap = 100
	cfg.EraCap = 100
	b := NewBalancer(cfg, 4, nil)

	var candidates []models.Artwork
	for i := 0; i < 10; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("x%d", i), 0.5, false, false))
	}

	if got := len(b.Balance(candidates, nil)); got != 4 {
		t.Errorf("len(results) = %d, want limit 4", got)
	}
}

func TestBalanceDeterministicWithoutShuffle(t *testing.T) {
	b := NewBalancer(testPipelineConfig(), 20, nil)

	var candidates []models.Artwork
	for i := 0; i < 15; i++ {
		candidates = append(candidates, mkArt("met", fmt.Sprintf("x%d", i), 0.5, i%2 == 0, false))
	}

	first := b.Balance(candidates, nil)
	for i := 0; i < 5; i++ {
		if got := b.Balance(candidates, nil); !reflect.DeepEqual(got, first) {
			t.Fatal("Balance must be idempotent when shuffling is disabled")
		}
	}
}

func TestBalanceShuffleKeepsScoreOrder(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.Shuffle = true
	b := NewBalancer(cfg, 20, rand.New(rand.NewSource(1)))

	candidates := []models.Artwork{
		mkArt("met", "tie1", 0.5, false, false),
		mkArt("met", "tie2", 0.5, false, false),
		mkArt("met", "top", 0.9, false, false),
	}

	results := b.Balance(candidates, nil)
	if results[0].ID != "met_top" {
		t.Errorf("results[0] = %q, shuffle must not break score ordering", results[0].ID)
	}
}

func TestBalanceNoveltyDeferral(t *testing.T) {
	cfg := testPipelineConfig()
	b := NewBalancer(cfg, 2, nil)

	candidates := []models.Artwork{
		mkArt("met", "seen-high", 0.9, false, false),
		mkArt("met", "fresh-mid", 0.5, false, false),
		mkArt("met", "fresh-low", 0.3, false, false),
	}
	seen := func(id string) bool { return id == "met_seen-high" }

	// Enough fresh candidates: the recently served one stays out.
	results := b.Balance(candidates, seen)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "met_fresh-mid" || results[1].ID != "met_fresh-low" {
		t.Errorf("results = %v, seen record must be deferred", []string{results[0].ID, results[1].ID})
	}

	// Short pool: the seen record backfills the remaining slot.
	results = b.Balance(candidates[:2], seen)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 with backfill", len(results))
	}
	if results[1].ID != "met_seen-high" {
		t.Errorf("results[1] = %q, want deferred record admitted last", results[1].ID)
	}
}
