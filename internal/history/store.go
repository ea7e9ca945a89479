// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion records and batch runs in SQLite.
// A batch run consults the store to skip sources whose content has not
// changed since their last successful conversion.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/blake3"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// DefaultPath is the history database used when none is configured.
const DefaultPath = ".pmwiki2md/history.db"

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			converted INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			source_path TEXT PRIMARY KEY,
			target_path TEXT NOT NULL,
			source_hash TEXT NOT NULL,
			settings_hash TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			error TEXT,
			run_id TEXT,
			converted_at TEXT NOT NULL,
			headings INTEGER NOT NULL DEFAULT 0,
			links INTEGER NOT NULL DEFAULT 0,
			images INTEGER NOT NULL DEFAULT 0,
			code_blocks INTEGER NOT NULL DEFAULT 0,
			list_items INTEGER NOT NULL DEFAULT 0,
			tables INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// Databases created before settings were tracked lack the column.
	var hasSettings int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM pragma_table_info('conversions') WHERE name = 'settings_hash'`,
	).Scan(&hasSettings); err != nil {
		return fmt.Errorf("checking conversions columns: %w", err)
	}
	if hasSettings == 0 {
		if _, err := s.db.Exec(`ALTER TABLE conversions ADD COLUMN settings_hash TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("adding settings_hash column: %w", err)
		}
	}
	return nil
}

// Hash returns the BLAKE3 hex digest of a source text.
func Hash(content string) string {
	sum := blake3.Sum256([]byte(content))
	return fmt.Sprintf("%x", sum[:])
}

// BeginRun records the start of a batch run and returns its summary with a
// fresh ID.
func (s *Store) BeginRun(ctx context.Context) (types.RunSummary, error) {
	run := types.RunSummary{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID, formatTime(run.StartedAt),
	)
	if err != nil {
		return types.RunSummary{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

// FinishRun stores the counts of a finished run. FinishedAt is set to the
// current time when zero.
func (s *Store) FinishRun(ctx context.Context, run types.RunSummary) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, converted = ?, skipped = ?, failed = ? WHERE id = ?`,
		formatTime(run.FinishedAt), run.Converted, run.Skipped, run.Failed, run.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", run.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("updating run %s: %w", run.ID, sql.ErrNoRows)
	}
	return nil
}

// Unchanged reports whether pair.Source was last converted successfully
// from content with sourceHash into pair.Target using the settings
// identified by settingsHash, and the target file still exists.
func (s *Store) Unchanged(ctx context.Context, pair types.FilePair, sourceHash, settingsHash string) (bool, error) {
	var storedHash, storedSettings, target, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_hash, settings_hash, target_path, status FROM conversions WHERE source_path = ?`,
		pair.Source,
	).Scan(&storedHash, &storedSettings, &target, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", pair.Source, err)
	}

	if storedHash != sourceHash || storedSettings != settingsHash {
		return false, nil
	}
	if target != pair.Target || status != string(types.ConversionDone) {
		return false, nil
	}
	if _, err := os.Stat(pair.Target); err != nil {
		return false, nil
	}
	return true, nil
}

// Record stores rec as the latest conversion of its source file.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversions (source_path, target_path, source_hash, settings_hash, status, error,
			run_id, converted_at, headings, links, images, code_blocks, list_items, tables)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			target_path=excluded.target_path, source_hash=excluded.source_hash,
			settings_hash=excluded.settings_hash,
			status=excluded.status, error=excluded.error, run_id=excluded.run_id,
			converted_at=excluded.converted_at, headings=excluded.headings,
			links=excluded.links, images=excluded.images, code_blocks=excluded.code_blocks,
			list_items=excluded.list_items, tables=excluded.tables`,
		rec.SourcePath, rec.TargetPath, rec.SourceHash, rec.SettingsHash, string(rec.Status), rec.Error, rec.RunID,
		formatTime(rec.ConvertedAt), rec.Stats.Headings, rec.Stats.Links, rec.Stats.Images,
		rec.Stats.CodeBlocks, rec.Stats.ListItems, rec.Stats.Tables,
	)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", rec.SourcePath, err)
	}

	return tx.Commit()
}

// List returns the latest record of every source file, sorted by source path.
func (s *Store) List(ctx context.Context) ([]types.ConversionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, target_path, source_hash, settings_hash, status, COALESCE(error, ''),
			COALESCE(run_id, ''), converted_at, headings, links, images, code_blocks,
			list_items, tables
		 FROM conversions ORDER BY source_path`)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec         types.ConversionRecord
			status      string
			convertedAt string
		)
		err := rows.Scan(&rec.SourcePath, &rec.TargetPath, &rec.SourceHash, &rec.SettingsHash, &status, &rec.Error,
			&rec.RunID, &convertedAt, &rec.Stats.Headings, &rec.Stats.Links, &rec.Stats.Images,
			&rec.Stats.CodeBlocks, &rec.Stats.ListItems, &rec.Stats.Tables)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.ConvertedAt = parseTime(convertedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Runs returns all recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]types.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), converted, skipped, failed
		 FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var (
			run               types.RunSummary
			started, finished string
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.Converted, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
