// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package cache

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/atelier/internal/logging"
)

// Key prefix for namespacing served-artwork IDs in BadgerDB.
const badgerNoveltyKeyPrefix = "served:"

// BadgerNovelty is the persistent novelty backend. Served IDs survive
// restarts, so a redeploy does not reset result rotation. Entries carry a
// native BadgerDB TTL and expire without explicit bookkeeping.
type BadgerNovelty struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerNovelty opens (or creates) the BadgerDB store at path.
func NewBadgerNovelty(path string, ttl time.Duration) (*BadgerNovelty, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	// Served IDs are tiny values; shrink the value log accordingly.
	opts.ValueLogFileSize = 16 << 20 // 16MB (smaller than default 1GB)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for novelty cache: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &BadgerNovelty{db: db, ttl: ttl}, nil
}

// Seen implements Novelty. Expired keys are filtered by BadgerDB itself.
func (b *BadgerNovelty) Seen(id string) bool {
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(badgerNoveltyKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Str("id", id).Msg("Novelty cache lookup failed")
		return false
	}
	return found
}

// MarkServed implements Novelty. Each ID is written with the cache TTL;
// re-marking refreshes the expiry.
func (b *BadgerNovelty) MarkServed(ids []string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			entry := badger.NewEntry([]byte(badgerNoveltyKeyPrefix+id), []byte{1}).WithTTL(b.ttl)
			if err := txn.SetEntry(entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Int("count", len(ids)).Msg("Novelty cache write failed")
	}
}

// CleanupExpired implements Novelty. BadgerDB expires keys itself; this
// runs value log GC to reclaim the disk space they held.
func (b *BadgerNovelty) CleanupExpired() int {
	reclaimed := 0
	for {
		err := b.db.RunValueLogGC(0.5)
		if err != nil {
			break
		}
		reclaimed++
	}
	return reclaimed
}

// Close implements Novelty.
func (b *BadgerNovelty) Close() error {
	return b.db.Close()
}
