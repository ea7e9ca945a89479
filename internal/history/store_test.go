// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func writeTarget(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("# out"), 0o644))
	return path
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	assert.FileExists(t, filepath.Join(dir, "state", "history.db"))
}

func TestOpenAddsSettingsColumn(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE conversions (
		source_path TEXT PRIMARY KEY, target_path TEXT NOT NULL, source_hash TEXT NOT NULL,
		status TEXT NOT NULL, error TEXT, run_id TEXT, converted_at TEXT NOT NULL,
		headings INTEGER NOT NULL DEFAULT 0, links INTEGER NOT NULL DEFAULT 0,
		images INTEGER NOT NULL DEFAULT 0, code_blocks INTEGER NOT NULL DEFAULT 0,
		list_items INTEGER NOT NULL DEFAULT 0, tables INTEGER NOT NULL DEFAULT 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO conversions (source_path, target_path, source_hash, status, converted_at)
		VALUES ('a.pmwiki', 'a.md', 'h', 'converted', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	recs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].SettingsHash)

	// Reopening an already migrated database is a no-op.
	again, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestHash(t *testing.T) {
	a := Hash("!Title")
	assert.Len(t, a, 64)
	assert.Equal(t, a, Hash("!Title"))
	assert.NotEqual(t, a, Hash("!!Title"))
}

func TestUnchanged(t *testing.T) {
	ctx := context.Background()
	store, dir := testStore(t)
	pair := types.FilePair{Source: filepath.Join(dir, "a.pmwiki"), Target: writeTarget(t, dir, "a.md")}
	hash := Hash("content")
	settings := Hash("rules")

	unchanged, err := store.Unchanged(ctx, pair, hash, settings)
	require.NoError(t, err)
	assert.False(t, unchanged, "no record yet")

	require.NoError(t, store.Record(ctx, types.ConversionRecord{
		SourcePath: pair.Source,
		TargetPath: pair.Target,
		SourceHash:   hash,
		SettingsHash: settings,
		Status:       types.ConversionDone,
	}))

	tests := []struct {
		name     string
		pair     types.FilePair
		hash     string
		settings string
		want     bool
	}{
		{name: "same content", pair: pair, hash: hash, settings: settings, want: true},
		{name: "changed content", pair: pair, hash: Hash("other"), settings: settings, want: false},
		{name: "changed settings", pair: pair, hash: hash, settings: Hash("tables"), want: false},
		{name: "different target", pair: types.FilePair{Source: pair.Source, Target: pair.Target + ".bak"}, hash: hash, settings: settings, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Unchanged(ctx, tt.pair, tt.hash, tt.settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("target removed", func(t *testing.T) {
		require.NoError(t, os.Remove(pair.Target))
		got, err := store.Unchanged(ctx, pair, hash, settings)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestUnchangedIgnoresFailedRecords(t *testing.T) {
	ctx := context.Background()
	store, dir := testStore(t)
	pair := types.FilePair{Source: filepath.Join(dir, "a.pmwiki"), Target: writeTarget(t, dir, "a.md")}

	require.NoError(t, store.Record(ctx, types.ConversionRecord{
		SourcePath: pair.Source,
		TargetPath: pair.Target,
		SourceHash: Hash("x"),
		Status:     types.ConversionFailed,
		Error:      "boom",
	}))

	got, err := store.Unchanged(ctx, pair, Hash("x"), "")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRecordUpsertsAndLists(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore(t)

	require.NoError(t, store.Record(ctx, types.ConversionRecord{
		SourcePath: "src/b.pmwiki", TargetPath: "out/b.md", SourceHash: "h1", Status: types.ConversionFailed, Error: "bad",
	}))
	require.NoError(t, store.Record(ctx, types.ConversionRecord{
		SourcePath: "src/a.pmwiki", TargetPath: "out/a.md", SourceHash: "h2", Status: types.ConversionDone,
		Stats: types.MarkdownStats{Headings: 2, Links: 1},
	}))
	require.NoError(t, store.Record(ctx, types.ConversionRecord{
		SourcePath: "src/b.pmwiki", TargetPath: "out/b.md", SourceHash: "h3", Status: types.ConversionDone,
	}))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "src/a.pmwiki", records[0].SourcePath)
	assert.Equal(t, types.MarkdownStats{Headings: 2, Links: 1}, records[0].Stats)
	assert.False(t, records[0].ConvertedAt.IsZero())

	assert.Equal(t, "src/b.pmwiki", records[1].SourcePath)
	assert.Equal(t, "h3", records[1].SourceHash)
	assert.Equal(t, types.ConversionDone, records[1].Status)
	assert.Empty(t, records[1].Error)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore(t)

	run, err := store.BeginRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	run.Converted, run.Skipped, run.Failed = 3, 1, 2
	require.NoError(t, store.FinishRun(ctx, run))

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, 3, runs[0].Converted)
	assert.Equal(t, 1, runs[0].Skipped)
	assert.Equal(t, 2, runs[0].Failed)
	assert.False(t, runs[0].FinishedAt.Before(runs[0].StartedAt))
}

func TestFinishUnknownRun(t *testing.T) {
	store, _ := testStore(t)
	err := store.FinishRun(context.Background(), types.RunSummary{ID: "missing"})
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore(t)

	run, err := store.BeginRun(ctx)
	require.NoError(t, err)
	require.NoError(t, store.FinishRun(ctx, run))
	require.NoError(t, store.Record(ctx, types.ConversionRecord{
		SourcePath: "src/a.pmwiki", TargetPath: "out/a.md", SourceHash: "h", Status: types.ConversionDone, RunID: run.ID,
	}))

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, store.WriteYAML(ctx, &buf))

		var got Export
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Conversions, 1)
		assert.Equal(t, run.ID, got.Conversions[0].RunID)
		require.Len(t, got.Runs, 1)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, store.WriteJSON(ctx, &buf))

		var got Export
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Conversions, 1)
		assert.Equal(t, "out/a.md", got.Conversions[0].TargetPath)
	})
}
