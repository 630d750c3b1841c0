package db

import (
	"context"
	"fmt"

	"github.com/akm592/coldreach/internal/types"
)

// LoadRecords returns all template performance records. Implements
// templates.Store.
func (db *DB) LoadRecords(ctx context.Context) ([]types.TemplatePerformanceRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT cluster, template, sent, replied, success_rate
		 FROM template_performance`)
	if err != nil {
		return nil, fmt.Errorf("failed to load performance records: %w", err)
	}
	defer rows.Close()

	var records []types.TemplatePerformanceRecord
	for rows.Next() {
		var rec types.TemplatePerformanceRecord
		if err := rows.Scan(&rec.Cluster, &rec.Template, &rec.Sent, &rec.Replied, &rec.SuccessRate); err != nil {
			return nil, fmt.Errorf("failed to scan performance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading performance records: %w", err)
	}
	return records, nil
}

// SaveRecord upserts one performance record after a tracker mutation.
func (db *DB) SaveRecord(ctx context.Context, rec types.TemplatePerformanceRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO template_performance (cluster, template, sent, replied, success_rate)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (cluster, template) DO UPDATE SET
			sent = $3, replied = $4, success_rate = $5`,
		rec.Cluster, rec.Template, rec.Sent, rec.Replied, rec.SuccessRate,
	)
	if err != nil {
		return fmt.Errorf("failed to save performance record %s:%s: %w", rec.Cluster, rec.Template, err)
	}
	return nil
}
