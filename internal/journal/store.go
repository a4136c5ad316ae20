package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump on schema changes; users
// delete the journal database to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different evtsift version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// BeginRun inserts a run in the running state.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, output_path, window_start, window_end, workers, status)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.OutputPath,
		run.WindowStart.UTC().Format(time.RFC3339Nano),
		run.WindowEnd.UTC().Format(time.RFC3339Nano),
		run.Workers,
		StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the terminal status and counters of a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, files_total = ?, files_empty = ?,
                files_failed = ?, records_written = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		run.Status,
		run.FilesTotal,
		run.FilesEmpty,
		run.FilesFailed,
		run.RecordsWritten,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %s", run.ID)
	}
	return nil
}

// RecordFile appends one input-file outcome to a run.
func (s *Store) RecordFile(ctx context.Context, outcome FileOutcome) error {
	recordedAt := outcome.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_files (run_id, path, status, records, detail, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		outcome.RunID,
		outcome.Path,
		outcome.Status,
		outcome.Records,
		outcome.Detail,
		recordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record file outcome: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first, at most limit of them.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), output_path, window_start, window_end,
                workers, status, files_total, files_empty, files_failed, records_written
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished, windowStart, windowEnd string
		if err := rows.Scan(&run.ID, &started, &finished, &run.OutputPath, &windowStart, &windowEnd,
			&run.Workers, &run.Status, &run.FilesTotal, &run.FilesEmpty, &run.FilesFailed,
			&run.RecordsWritten); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		run.WindowStart, _ = time.Parse(time.RFC3339Nano, windowStart)
		run.WindowEnd, _ = time.Parse(time.RFC3339Nano, windowEnd)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// FilesForRun returns the per-file outcomes of one run in append order.
func (s *Store) FilesForRun(ctx context.Context, runID string) ([]FileOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, path, status, records, detail, recorded_at
         FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var outcomes []FileOutcome
	for rows.Next() {
		var outcome FileOutcome
		var recordedAt string
		if err := rows.Scan(&outcome.RunID, &outcome.Path, &outcome.Status, &outcome.Records,
			&outcome.Detail, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		outcome.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)
		outcomes = append(outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return outcomes, nil
}
