package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arara-labs/gradsearch/internal/core/domain"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// RecordRun logs one scrape execution, successful or not.
func (s *runStore) RecordRun(ctx context.Context, run *domain.ScrapeRun) error {
	if run == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scrape_runs (id, dataset, items, duration_ms, started_at, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID,
		string(run.Dataset),
		run.Items,
		run.Duration.Milliseconds(),
		run.StartedAt.UTC().Format(time.RFC3339),
		nullString(run.Error))

	if err != nil {
		return fmt.Errorf("recording scrape run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs across all datasets, most recent
// first. A non-positive limit returns everything.
func (s *runStore) RecentRuns(ctx context.Context, limit int) ([]domain.ScrapeRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unlimited
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, dataset, items, duration_ms, started_at, error
		FROM scrape_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scrape runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ScrapeRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scrape runs: %w", err)
	}

	return runs, nil
}

// LastRun returns the most recent run for a dataset.
// Returns nil and no error when the dataset has never been scraped.
func (s *runStore) LastRun(ctx context.Context, dataset domain.Dataset) (*domain.ScrapeRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, dataset, items, duration_ms, started_at, error
		FROM scrape_runs
		WHERE dataset = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`, string(dataset))

	run, err := scanRunRow(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // Per interface: nil and no error when never scraped
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// PruneRuns removes history beyond the retention limit, keeping the
// most recent keep runs per dataset.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM scrape_runs
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY dataset ORDER BY started_at DESC, rowid DESC
				) as rn
				FROM scrape_runs
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning scrape runs: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (s *runStore) Close() error {
	return s.store.Close()
}

// ==================== Helper Functions ====================

// scanRunRow scans a single scrape run row.
func scanRunRow(row *sql.Row) (*domain.ScrapeRun, error) {
	var run domain.ScrapeRun
	var dataset, startedAt string
	var durationMs int64
	var errMsg sql.NullString

	if err := row.Scan(&run.ID, &dataset, &run.Items,
		&durationMs, &startedAt, &errMsg); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning scrape run: %w", err)
	}

	fillRun(&run, dataset, durationMs, startedAt, errMsg)
	return &run, nil
}

// scanRun scans a scrape run from *sql.Rows.
func scanRun(rows *sql.Rows) (*domain.ScrapeRun, error) {
	var run domain.ScrapeRun
	var dataset, startedAt string
	var durationMs int64
	var errMsg sql.NullString

	if err := rows.Scan(&run.ID, &dataset, &run.Items,
		&durationMs, &startedAt, &errMsg); err != nil {
		return nil, fmt.Errorf("scanning scrape run: %w", err)
	}

	fillRun(&run, dataset, durationMs, startedAt, errMsg)
	return &run, nil
}

// fillRun decodes the stored column forms into the domain record.
func fillRun(run *domain.ScrapeRun, dataset string, durationMs int64, startedAt string, errMsg sql.NullString) {
	run.Dataset = domain.Dataset(dataset)
	run.Duration = time.Duration(durationMs) * time.Millisecond
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		run.StartedAt = t
	}
	if errMsg.Valid {
		run.Error = errMsg.String
	}
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
