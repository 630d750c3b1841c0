package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akm592/coldreach/internal/cache"
)

// LoadEntries returns all cached research entries. Implements cache.Store.
func (db *DB) LoadEntries(ctx context.Context) ([]cache.Entry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, key, category, document, embedding, created_at
		 FROM research_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to load cache entries: %w", err)
	}
	defer rows.Close()

	var entries []cache.Entry
	for rows.Next() {
		var e cache.Entry
		var doc []byte
		if err := rows.Scan(&e.ID, &e.Key, &e.Category, &doc, &e.Embedding, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		if err := json.Unmarshal(doc, &e.Document); err != nil {
			return nil, fmt.Errorf("failed to decode cached document %s: %w", e.Key, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading cache entries: %w", err)
	}
	return entries, nil
}

// SaveEntry upserts one cache entry keyed by lookup key; last write wins.
func (db *DB) SaveEntry(ctx context.Context, e cache.Entry) error {
	doc, err := json.Marshal(e.Document)
	if err != nil {
		return fmt.Errorf("failed to encode document for %s: %w", e.Key, err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO research_cache (id, key, category, document, embedding, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (key) DO UPDATE SET
			category = $3, document = $4, embedding = $5, created_at = $6`,
		e.ID, e.Key, e.Category, doc, e.Embedding, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save cache entry %s: %w", e.Key, err)
	}
	return nil
}

// DeleteEntry removes an expired entry by key.
func (db *DB) DeleteEntry(ctx context.Context, key string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM research_cache WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry %s: %w", key, err)
	}
	return nil
}
