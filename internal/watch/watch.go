// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-converts source files when they change on disk.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/pmwiki2md/internal/convert"
	"github.com/pdiddy/pmwiki2md/internal/pairing"
	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// DefaultDebounce is the quiet period after the last change before
// converting.
const DefaultDebounce = 500 * time.Millisecond

// Watcher converts a source directory once, then converts every eligible
// file that is created or written afterwards.
type Watcher struct {
	conv     convert.Converter
	cfg      types.PairingConfig
	opts     convert.Options
	out      io.Writer
	logger   *slog.Logger
	debounce time.Duration
	ready    chan struct{}
}

// New returns a watcher. Status lines go to out; watcher events are logged
// through logger, or slog.Default when nil.
func New(conv convert.Converter, cfg types.PairingConfig, opts convert.Options, out io.Writer, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		conv:     conv,
		cfg:      cfg,
		opts:     opts,
		out:      out,
		logger:   logger,
		debounce: DefaultDebounce,
		ready:    make(chan struct{}),
	}
}

// SetDebounce changes the quiet period. It must be called before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Ready is closed once the source directory is watched and the initial
// conversion has finished.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. Conversion failures are reported and
// do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.SourceDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.SourceDir, err)
	}
	w.logger.Info("watching source directory", "dir", w.cfg.SourceDir, "target", w.cfg.TargetDir)

	if _, err := convert.ConvertDir(ctx, w.conv, w.cfg, w.opts, w.out); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	close(w.ready)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watcher")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !pairing.Eligible(w.cfg, name) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-fire:
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

// flush converts the pending files that still exist as regular files.
func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]types.FilePair, 0, len(names))
	for _, name := range names {
		pair := pairing.Pair(w.cfg, name)
		info, err := os.Stat(pair.Source)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		pairs = append(pairs, pair)
	}
	if len(pairs) == 0 {
		return
	}

	w.logger.Info("converting changed files", "count", len(pairs))
	result, err := convert.ConvertPairs(ctx, w.conv, pairs, w.opts, w.out)
	if err != nil {
		w.logger.Warn("conversion interrupted", "error", err)
		return
	}
	if result.HasFailures() {
		w.logger.Warn("some files failed", "failed", result.Failed, "total", result.Total())
	}
}
