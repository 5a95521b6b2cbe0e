package postgres

import (
	"context"
	"fmt"

	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

const upsertBatchSize = 100

// upsertRows writes rows in one transaction, upsertBatchSize rows per INSERT.
// Callers must not pass two rows with the same conflict key in one call.
func upsertRows[T any](ctx context.Context, db *sqlx.DB, table string, rows []T, suffix string) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(rows); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(rows))
		query, args, err := qb.InsertModels(table, rows[start:end], suffix)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s rows %d-%d: %w", table, start, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return nil
}

// overwriteSuffix updates every non-key column of model on conflict.
func overwriteSuffix(model any, target ...string) string {
	cols, err := qb.Columns(model)
	if err != nil {
		return qb.OnConflict(target...).DoNothing().String()
	}
	return qb.OnConflict(target...).DoUpdateExcept(cols).String()
}
