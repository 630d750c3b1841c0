// Package db provides PostgreSQL persistence for contacts, the research
// cache, and template performance records.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the campaign tables when they do not exist yet.
// Idempotent; run once at startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			id UUID PRIMARY KEY,
			company TEXT NOT NULL,
			recipient_name TEXT NOT NULL DEFAULT '',
			recipient_email TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			referral_name TEXT NOT NULL DEFAULT '',
			referral_company TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Pending',
			resume_type TEXT NOT NULL DEFAULT '',
			template_used TEXT NOT NULL DEFAULT '',
			sent_date TEXT NOT NULL DEFAULT '',
			follow_up_1_date TEXT NOT NULL DEFAULT '',
			follow_up_2_date TEXT NOT NULL DEFAULT '',
			follow_up_3_date TEXT NOT NULL DEFAULT '',
			response_status TEXT NOT NULL DEFAULT '',
			research_snapshot TEXT NOT NULL DEFAULT '',
			pending_subject TEXT NOT NULL DEFAULT '',
			pending_body TEXT NOT NULL DEFAULT '',
			failure_reason TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS contacts_email_idx
			ON contacts (recipient_email)`,
		`CREATE TABLE IF NOT EXISTS research_cache (
			id UUID PRIMARY KEY,
			key TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			document JSONB NOT NULL,
			embedding REAL[],
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS template_performance (
			cluster TEXT NOT NULL,
			template TEXT NOT NULL,
			sent INTEGER NOT NULL DEFAULT 0,
			replied INTEGER NOT NULL DEFAULT 0,
			success_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (cluster, template)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
