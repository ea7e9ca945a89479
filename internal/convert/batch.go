// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pmwiki2md/internal/pairing"
	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	RunID     string
	Converted int
	Skipped   int
	Failed    int

	// Files holds per-file results in source order.
	Files []FileResult
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(res FileResult) {
	switch res.Status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionSkipped:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, res)
}

// syncWriter serializes writes from concurrent workers so status lines do
// not interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// ConvertBatch converts pairs in parallel, printing per-file status to w
// and returning a summary. A failing file does not stop the batch. When
// ctx is cancelled no new files are started and ctx.Err() is returned with
// the results gathered so far.
func ConvertBatch(ctx context.Context, c Converter, pairs []types.FilePair, opts Options, w io.Writer) (BatchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := &syncWriter{w: w}
	results := make([]FileResult, len(pairs))
	started := make([]bool, len(pairs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, pair := range pairs {
		if ctx.Err() != nil {
			break
		}
		started[i] = true
		i, pair := i, pair
		g.Go(func() error {
			results[i] = ConvertFile(ctx, c, pair, opts, out)
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{RunID: opts.RunID}
	for i, res := range results {
		if started[i] {
			result.add(res)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, ctx.Err()
}

// ConvertDir discovers the files of cfg and converts them with
// ConvertPairs.
func ConvertDir(ctx context.Context, c Converter, cfg types.PairingConfig, opts Options, w io.Writer) (BatchResult, error) {
	pairs, err := pairing.Discover(cfg)
	if err != nil {
		return BatchResult{}, err
	}
	if err := os.MkdirAll(cfg.TargetDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating target directory %s: %w", cfg.TargetDir, err)
	}
	return ConvertPairs(ctx, c, pairs, opts, w)
}

// ConvertPairs runs ConvertBatch and, when opts.Recorder is set, records
// the run and its counts.
func ConvertPairs(ctx context.Context, c Converter, pairs []types.FilePair, opts Options, w io.Writer) (BatchResult, error) {
	if opts.Recorder == nil {
		return ConvertBatch(ctx, c, pairs, opts, w)
	}

	run, err := opts.Recorder.BeginRun(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("starting run: %w", err)
	}
	opts.RunID = run.ID

	result, batchErr := ConvertBatch(ctx, c, pairs, opts, w)

	run.Converted, run.Skipped, run.Failed = result.Converted, result.Skipped, result.Failed
	if err := opts.Recorder.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		fmt.Fprintf(w, "warning: finishing run %s: %v\n", run.ID, err)
	}
	return result, batchErr
}
