// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package cache

import (
	"sync"
	"time"
)

// lruEntry is a node in the doubly-linked recency list.
type lruEntry struct {
	id        string
	servedAt  time.Time
	prev      *lruEntry
	next      *lruEntry
	expiresAt time.Time
}

// NoveltyLRU is the in-memory novelty backend: a thread-safe LRU with TTL.
// O(1) for Seen, MarkServed and eviction.
//
// A doubly-linked list with sentinel head/tail nodes keeps recency order
// (head.next is most recent) while a map gives O(1) lookup. Expiration is
// lazy on read plus a periodic sweep via CleanupExpired.
type NoveltyLRU struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration

	items map[string]*lruEntry
	head  *lruEntry
	tail  *lruEntry

	hits   int64
	misses int64
}

// NewNoveltyLRU creates the in-memory backend with the given capacity and
// TTL window. Non-positive arguments fall back to safe defaults.
func NewNoveltyLRU(capacity int, ttl time.Duration) *NoveltyLRU {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	c := &NoveltyLRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}

	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Seen implements Novelty. It never refreshes TTL or recency: a record
// served once must age out on schedule even if it keeps being checked.
func (c *NoveltyLRU) Seen(id string) bool {
	c.mu.RLock()
	entry, exists := c.items[id]
	expired := exists && time.Now().After(entry.expiresAt)
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return false
	}
	if expired {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed or removed the entry in between.
		if entry, ok := c.items[id]; ok && time.Now().After(entry.expiresAt) {
			c.removeEntry(entry)
		}
		c.misses++
		c.mu.Unlock()
		return false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return true
}

// MarkServed implements Novelty. Re-marking an ID refreshes its TTL and
// moves it to the front of the recency list.
func (c *NoveltyLRU) MarkServed(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expiresAt := now.Add(c.ttl)

	for _, id := range ids {
		if entry, exists := c.items[id]; exists {
			entry.servedAt = now
			entry.expiresAt = expiresAt
			c.moveToFront(entry)
			continue
		}

		entry := &lruEntry{
			id:        id,
			servedAt:  now,
			expiresAt: expiresAt,
		}
		c.addToFront(entry)
		c.items[id] = entry

		for len(c.items) > c.capacity {
			c.evictOldest()
		}
	}
}

// CleanupExpired implements Novelty. Walks from the tail (least recently
// served) and removes every expired entry.
func (c *NoveltyLRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	return removed
}

// Len returns the current number of tracked IDs.
func (c *NoveltyLRU) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns hit/miss counters and the current size.
func (c *NoveltyLRU) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.items)
}

// Close implements Novelty. The in-memory backend has nothing to release.
func (c *NoveltyLRU) Close() error {
	return nil
}

// Internal methods (must be called with lock held)

func (c *NoveltyLRU) addToFront(entry *lruEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *NoveltyLRU) moveToFront(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *NoveltyLRU) removeEntry(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.id)
}

func (c *NoveltyLRU) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}
