package templates

import (
	"context"
	"fmt"
	"sync"

	"github.com/akm592/coldreach/internal/types"
)

// Store persists performance records. Updates are flushed record by record
// after every mutation.
type Store interface {
	LoadRecords(ctx context.Context) ([]types.TemplatePerformanceRecord, error)
	SaveRecord(ctx context.Context, rec types.TemplatePerformanceRecord) error
}

type recordKey struct {
	cluster  string
	template string
}

// Tracker records send/reply outcomes per (cluster, template) pair and
// recommends the best-performing template. The policy is greedy all-time
// success rate with no decay, no exploration bonus, and no minimum-sample
// floor; determinism and explainability are preferred over optimality at
// the sample sizes this system sees.
type Tracker struct {
	mu      sync.Mutex
	records map[recordKey]*types.TemplatePerformanceRecord
	store   Store
}

// NewTracker loads all persisted records and returns a ready tracker.
func NewTracker(ctx context.Context, store Store) (*Tracker, error) {
	loaded, err := store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load template performance records: %w", err)
	}

	records := make(map[recordKey]*types.TemplatePerformanceRecord, len(loaded))
	for i := range loaded {
		rec := loaded[i]
		records[recordKey{rec.Cluster, rec.Template}] = &rec
	}
	return &Tracker{records: records, store: store}, nil
}

// Update increments the sent counter, increments replied when success is
// true, recomputes the success rate, and flushes the record.
func (t *Tracker) Update(ctx context.Context, template, cluster string, success bool) error {
	t.mu.Lock()
	key := recordKey{cluster, template}
	rec, ok := t.records[key]
	if !ok {
		rec = &types.TemplatePerformanceRecord{Cluster: cluster, Template: template}
		t.records[key] = rec
	}
	rec.Sent++
	if success {
		rec.Replied++
	}
	rec.Recompute()
	snapshot := *rec
	t.mu.Unlock()

	if err := t.store.SaveRecord(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist template performance for %s:%s: %w", cluster, template, err)
	}
	return nil
}

// Select returns the candidate with the highest recorded success rate for
// the cluster. When no candidate has history, it returns the first
// candidate in the supplied order; ties also resolve to the earliest
// candidate. Deterministic across repeated calls by iterating the
// candidate slice, never map order.
func (t *Tracker) Select(candidates []string, cluster string) string {
	if len(candidates) == 0 {
		return ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	best := ""
	bestRate := -1.0
	for _, name := range candidates {
		rec, ok := t.records[recordKey{cluster, name}]
		if !ok {
			continue
		}
		if rec.SuccessRate > bestRate {
			bestRate = rec.SuccessRate
			best = name
		}
	}

	if best == "" {
		return candidates[0]
	}
	return best
}

// Record returns a copy of the performance record for a pair, with ok=false
// when no history exists.
func (t *Tracker) Record(template, cluster string) (types.TemplatePerformanceRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[recordKey{cluster, template}]
	if !ok {
		return types.TemplatePerformanceRecord{}, false
	}
	return *rec, true
}
