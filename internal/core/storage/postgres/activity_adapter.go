package postgres

import (
	"context"
	"fmt"
	"log/slog"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
)

// InsertBatch writes one ingestion batch atomically.
// The batch is split into statements that stay under the bind-parameter limit,
// all inside a single transaction: either every row of the batch is applied
// (new rows inserted, known activity_ids skipped) or none is.
// Returns the number of rows actually inserted.
func (a *Adapter) InsertBatch(ctx context.Context, records []v1.ActivityRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("insert batch: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	chunkSize := a.maxRowsPerStatement
	if chunkSize <= 0 {
		chunkSize = maxBindParams / activityColumnCount
	}

	var inserted int64
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		args := make([]interface{}, 0, len(chunk)*activityColumnCount)
		for _, rec := range chunk {
			args = appendActivityArgs(args, rec)
		}

		result, err := tx.ExecContext(ctx, buildInsertActivities(len(chunk)), args...)
		if err != nil {
			return 0, fmt.Errorf("insert batch: rows %d-%d: %w", start, end-1, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("insert batch: rows affected: %w", err)
		}
		inserted += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert batch: commit: %w", err)
	}

	slog.Debug("[Postgres] Inserted batch",
		"records", len(records),
		"inserted", inserted,
		"skipped_existing", int64(len(records))-inserted)
	return inserted, nil
}

// CountActivities returns the number of stored activity rows.
func (a *Adapter) CountActivities(ctx context.Context) (int64, error) {
	var count int64
	if err := a.stmtCount.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return count, nil
}
