// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package cache

import (
	"testing"
	"time"

	"github.com/tomtom215/atelier/internal/config"
)

func newTestBadgerNovelty(t *testing.T, ttl time.Duration) *BadgerNovelty {
	t.Helper()

	b, err := NewBadgerNovelty(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewBadgerNovelty() error = %v", err)
	}
	t.Cleanup(func() {
		if err := b.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return b
}

func TestBadgerNoveltySeenAfterMarkServed(t *testing.T) {
	b := newTestBadgerNovelty(t, time.Minute)

	if b.Seen("met_1") {
		t.Error("Seen(met_1) = true before marking")
	}

	b.MarkServed([]string{"met_1", "aic_2"})

	if !b.Seen("met_1") || !b.Seen("aic_2") {
		t.Error("marked IDs must be seen")
	}
	if b.Seen("met_3") {
		t.Error("unmarked ID must not be seen")
	}
}

func TestBadgerNoveltyExpiry(t *testing.T) {
	b := newTestBadgerNovelty(t, 50*time.Millisecond)

	b.MarkServed([]string{"met_1"})
	if !b.Seen("met_1") {
		t.Fatal("fresh entry must be seen")
	}

	time.Sleep(100 * time.Millisecond)

	if b.Seen("met_1") {
		t.Error("expired entry must not be seen")
	}
}

func TestNewFactorySelectsBackend(t *testing.T) {
	disabled, err := New(&config.NoveltyConfig{Enabled: false})
	if err != nil || disabled != nil {
		t.Errorf("New(disabled) = (%v, %v), want (nil, nil)", disabled, err)
	}

	mem, err := New(&config.NoveltyConfig{
		Enabled:  true,
		Backend:  "memory",
		Capacity: 10,
		TTL:      time.Minute,
	})
	if err != nil {
		t.Fatalf("New(memory) error = %v", err)
	}
	if _, ok := mem.(*NoveltyLRU); !ok {
		t.Errorf("New(memory) = %T, want *NoveltyLRU", mem)
	}

	persistent, err := New(&config.NoveltyConfig{
		Enabled: true,
		Backend: "badger",
		TTL:     time.Minute,
		Path:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("New(badger) error = %v", err)
	}
	defer persistent.Close()
	if _, ok := persistent.(*BadgerNovelty); !ok {
		t.Errorf("New(badger) = %T, want *BadgerNovelty", persistent)
	}

	if _, err := New(&config.NoveltyConfig{Enabled: true, Backend: "redis"}); err == nil {
		t.Error("New(redis) must return an error")
	}
}
