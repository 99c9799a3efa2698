package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out the global monotonic sequence shared by every
// event table, so LLM calls and finished rounds can be ordered against each
// other. The table itself is created by the initial migration.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// sequenceFilter appends the QueryOpts range conditions to a WHERE clause.
func sequenceFilter(where string, args []any, opts QueryOpts) (string, []any) {
	if opts.After > 0 {
		where += " AND sequence > ?"
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where += " AND sequence < ?"
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where += " AND timestamp >= ?"
		args = append(args, opts.From.UTC())
	}
	if !opts.To.IsZero() {
		where += " AND timestamp <= ?"
		args = append(args, opts.To.UTC())
	}
	return where, args
}

func limitClause(opts QueryOpts) string {
	if opts.Limit > 0 {
		return fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return ""
}
