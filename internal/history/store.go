package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tracksplit/internal/export"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must then be cleared.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrRunNotFound indicates the requested run id is not recorded.
var ErrRunNotFound = errors.New("run not found")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Run is one recorded split run.
type Run struct {
	RunID         string
	SourcePath    string
	Album         string
	Success       bool
	TrackCount    int
	ExportedCount int
	DegradedCount int
	FailedCount   int
	Elapsed       time.Duration
	StartedAt     time.Time
	CreatedAt     time.Time
}

// Track is one track outcome within a recorded run.
type Track struct {
	Index        int
	Title        string
	OutputPath   string
	Status       string
	ErrorKind    string
	ErrorMessage string
	Elapsed      time.Duration
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("history database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
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

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
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
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'tracksplit history clear' or delete %s)",
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
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// RecordRun persists one report with its per-track outcomes.
func (s *Store) RecordRun(ctx context.Context, report export.Report) error {
	if report.RunID == "" {
		return errors.New("report has no run id")
	}
	exported, degraded, failed := report.Counts()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	startedAt := report.StartedAt.UTC().Format(time.RFC3339Nano)

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (
                run_id, source_path, album, success, track_count,
                exported_count, degraded_count, failed_count,
                elapsed_ms, started_at, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID,
			report.SourcePath,
			report.Album,
			boolToInt(report.Success),
			len(report.Results),
			exported,
			degraded,
			failed,
			report.Elapsed.Milliseconds(),
			startedAt,
			createdAt,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, result := range report.Results {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_tracks (
                    run_id, track_index, title, output_path,
                    status, error_kind, error_message, elapsed_ms
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				report.RunID,
				result.Index,
				result.Title,
				nullableString(result.OutputPath),
				string(result.Status),
				nullableString(result.ErrorKind),
				nullableString(result.ErrorMessage),
				result.Elapsed.Milliseconds(),
			); err != nil {
				return fmt.Errorf("insert run track %d: %w", result.Index, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
}

// List returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, source_path, album, success, track_count,
        exported_count, degraded_count, failed_count, elapsed_ms, started_at, created_at
        FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns one run and its tracks by run id.
func (s *Store) Get(ctx context.Context, runID string) (Run, []Track, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, source_path, album, success, track_count,
            exported_count, degraded_count, failed_count, elapsed_ms, started_at, created_at
            FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT track_index, title, output_path, status, error_kind, error_message, elapsed_ms
            FROM run_tracks WHERE run_id = ? ORDER BY track_index`, runID)
	if err != nil {
		return Run{}, nil, fmt.Errorf("list run tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var (
			track        Track
			outputPath   sql.NullString
			errorKind    sql.NullString
			errorMessage sql.NullString
			elapsedMS    int64
		)
		if err := rows.Scan(&track.Index, &track.Title, &outputPath, &track.Status,
			&errorKind, &errorMessage, &elapsedMS); err != nil {
			return Run{}, nil, fmt.Errorf("scan run track: %w", err)
		}
		track.OutputPath = outputPath.String
		track.ErrorKind = errorKind.String
		track.ErrorMessage = errorMessage.String
		track.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate run tracks: %w", err)
	}
	return run, tracks, nil
}

// Clear removes every recorded run and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	var deleted int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		success   int
		elapsedMS int64
		startedAt string
		createdAt string
	)
	if err := row.Scan(&run.RunID, &run.SourcePath, &run.Album, &success, &run.TrackCount,
		&run.ExportedCount, &run.DegradedCount, &run.FailedCount, &elapsedMS, &startedAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Success = success != 0
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if parsed, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		run.StartedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = parsed
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
