package persist

import (
	"context"
	"fmt"
)

// JournalEntry is one row of the world audit trail.
type JournalEntry struct {
	Tick    uint64
	Kind    string // event name, e.g. "group_moved"
	Subject string
	Object  string
	Amount  int
	Detail  string
}

// JournalRepo appends entries to world_journal. Rows are never read back
// by the simulation.
type JournalRepo struct {
	db    *DB
	runID string
}

// NewJournalRepo tags every row it writes with runID.
func NewJournalRepo(db *DB, runID string) *JournalRepo {
	return &JournalRepo{db: db, runID: runID}
}

// WriteJournal atomically writes a batch of entries in a single transaction.
func (r *JournalRepo) WriteJournal(ctx context.Context, entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO world_journal (run_id, tick, kind, subject, object, amount, detail)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.runID, int64(e.Tick), e.Kind, e.Subject, e.Object, e.Amount, e.Detail,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	return nil
}
