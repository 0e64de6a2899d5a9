package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// PostgresRepository persists curation runs and their rejection records
// for later audit of classification decisions.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.AuditRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveRun inserts the run summary and its rejection records in one
// transaction.
func (r *PostgresRepository) SaveRun(ctx context.Context, run domain.CurationRun) error {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insertRun := r.builder.
		Insert("curation_runs").
		Columns("id", "selector", "sectors", "items").
		Values(run.ID, string(run.Selector), run.Sectors, run.Items)
	query, args, err := insertRun.ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	if len(run.Rejected) > 0 {
		insertRecords := r.builder.
			Insert("rejection_records").
			Columns("run_id", "reason", "title", "url", "stage")
		for _, rec := range run.Rejected {
			insertRecords = insertRecords.Values(run.ID, string(rec.Reason), rec.Title, rec.URL, rec.Stage)
		}
		query, args, err = insertRecords.ToSql()
		if err != nil {
			return fmt.Errorf("build record insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert records for run %s: %w", run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// CountByReason aggregates stored rejection records by reason tag.
func (r *PostgresRepository) CountByReason(ctx context.Context) (map[domain.RejectionReason]int, error) {
	if r.db == nil {
		return map[domain.RejectionReason]int{}, nil
	}

	query, args, err := r.builder.
		Select("reason", "COUNT(*)").
		From("rejection_records").
		GroupBy("reason").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.RejectionReason]int)
	for rows.Next() {
		var reason string
		var total int
		if err := rows.Scan(&reason, &total); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[domain.RejectionReason(reason)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return counts, nil
}
