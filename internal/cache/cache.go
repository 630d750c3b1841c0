// Package cache implements the research intelligence cache: exact-key TTL
// lookup with an optional semantic tier that resolves near-duplicate
// queries to existing entries by embedding similarity.
package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akm592/coldreach/internal/types"
)

// CategoryCompanyResearch is the entry type for company research documents.
// Semantic matching only compares entries of the same category.
const CategoryCompanyResearch = "company_research"

// Entry wraps a cached research document with its lookup key, category,
// creation timestamp, and the embedding used for semantic comparison.
// Embedding is nil for exact-match-only entries.
type Entry struct {
	ID        uuid.UUID
	Key       string
	Category  string
	Document  types.ResearchDocument
	Embedding []float32
	CreatedAt time.Time
}

// Store persists cache entries. The cache loads the store in full at
// startup and flushes after every write.
type Store interface {
	LoadEntries(ctx context.Context) ([]Entry, error)
	SaveEntry(ctx context.Context, e Entry) error
	DeleteEntry(ctx context.Context, key string) error
}

// Embedder produces embedding vectors for semantic comparison.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Cache is the two-tier research cache. Execution is single-threaded
// per-pass, but reads and writes stay atomic per key so the contract holds
// if the driver is ever made concurrent.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	store     Store
	embedder  Embedder // nil disables the semantic tier
	ttl       time.Duration
	threshold float64
	now       func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithEmbedder enables the semantic tier using the given embedder.
func WithEmbedder(e Embedder) Option {
	return func(c *Cache) { c.embedder = e }
}

// WithThreshold overrides the minimum cosine similarity for a semantic hit.
func WithThreshold(t float64) Option {
	return func(c *Cache) { c.threshold = t }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New builds a cache over the given store, loading all persisted entries.
func New(ctx context.Context, store Store, ttl time.Duration, opts ...Option) (*Cache, error) {
	c := &Cache{
		entries:   make(map[string]*Entry),
		store:     store,
		ttl:       ttl,
		threshold: 0.85,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	loaded, err := store.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range loaded {
		e := loaded[i]
		e.Embedding = normalize(e.Embedding)
		c.entries[e.Key] = &e
	}
	return c, nil
}

// Get looks up a research document. Lookup order: exact key within TTL,
// then (when enabled) best semantic match of the same category at or above
// the threshold. Expired entries are evicted lazily here; there is no
// background sweep. A semantic hit refreshes the matched entry's timestamp.
func (c *Cache) Get(ctx context.Context, key, category string) (types.ResearchDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if e, ok := c.entries[key]; ok {
		if now.Sub(e.CreatedAt) < c.ttl {
			// Exact hit: timestamp deliberately untouched.
			return e.Document, true
		}
		c.evictLocked(ctx, key)
	}

	if c.embedder == nil {
		return types.ResearchDocument{}, false
	}

	queryVec, err := c.embedder.EmbedText(ctx, key)
	if err != nil {
		log.Printf("[CACHE] embedding failed for %q, exact-only lookup: %v", key, err)
		return types.ResearchDocument{}, false
	}
	queryVec = normalize(queryVec)

	var best *Entry
	bestScore := 0.0
	for k, e := range c.entries {
		if e.Category != category || len(e.Embedding) != len(queryVec) || len(e.Embedding) == 0 {
			continue
		}
		if now.Sub(e.CreatedAt) >= c.ttl {
			c.evictLocked(ctx, k)
			continue
		}
		score := dotProduct(queryVec, e.Embedding)
		if score > bestScore {
			bestScore = score
			best = e
		}
	}

	if best == nil || bestScore < c.threshold {
		return types.ResearchDocument{}, false
	}

	// Access extends life: semantic hits refresh the matched entry.
	best.CreatedAt = now
	if err := c.store.SaveEntry(ctx, *best); err != nil {
		log.Printf("[CACHE] failed to persist timestamp refresh for %q: %v", best.Key, err)
	}
	log.Printf("[CACHE] semantic hit: %q resolved to %q (similarity %.3f)", key, best.Key, bestScore)
	return best.Document, true
}

// Put stores a document under the exact key, computing an embedding for
// future semantic comparisons. Embedding failure degrades the entry to
// exact-match-only; it never fails the write. Concurrent writers for the
// same key resolve last-write-wins. The store is flushed before returning.
func (c *Cache) Put(ctx context.Context, key, category string, doc types.ResearchDocument) error {
	e := Entry{
		ID:        uuid.New(),
		Key:       key,
		Category:  category,
		Document:  doc,
		CreatedAt: c.now(),
	}

	if c.embedder != nil {
		vec, err := c.embedder.EmbedText(ctx, key)
		if err != nil {
			log.Printf("[CACHE] embedding failed for %q, storing exact-match-only: %v", key, err)
		} else {
			e.Embedding = normalize(vec)
		}
	}

	c.mu.Lock()
	c.entries[key] = &e
	c.mu.Unlock()

	return c.store.SaveEntry(ctx, e)
}

// Len reports the number of live entries (including not-yet-evicted
// expired ones).
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) evictLocked(ctx context.Context, key string) {
	delete(c.entries, key)
	if err := c.store.DeleteEntry(ctx, key); err != nil {
		log.Printf("[CACHE] failed to delete expired entry %q: %v", key, err)
	}
}
