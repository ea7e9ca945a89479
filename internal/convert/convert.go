// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PmWiki source text into Markdown and runs batch
// conversions of a source directory into a target directory.
package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pmwiki2md/internal/history"
	"github.com/pdiddy/pmwiki2md/internal/inspect"
	"github.com/pdiddy/pmwiki2md/internal/rule"
	"github.com/pdiddy/pmwiki2md/internal/textfile"
	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// Converter transforms PmWiki source text into Markdown.
type Converter interface {
	Convert(source string) (string, error)
}

// PipelineConverter converts text with a rule pipeline. It is safe for
// concurrent use.
type PipelineConverter struct {
	pipeline *rule.Pipeline
}

// New returns a converter running the rule catalog selected by opts.
func New(opts rule.Options) *PipelineConverter {
	return &PipelineConverter{pipeline: rule.NewCatalogPipeline(opts)}
}

// Pipeline returns the underlying rule pipeline.
func (c *PipelineConverter) Pipeline() *rule.Pipeline {
	return c.pipeline
}

// Fingerprint identifies the rules the converter runs, in order. Two
// converters with the same fingerprint produce the same output.
func (c *PipelineConverter) Fingerprint() string {
	var b strings.Builder
	for _, r := range c.pipeline.Rules() {
		b.WriteString(r.Name())
		if s, ok := r.(fmt.Stringer); ok {
			b.WriteString(" ")
			b.WriteString(s.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Convert runs the pipeline over source. CRLF line endings are normalized
// to LF first, and line-start rules such as headers and lists also match on
// the first line.
func (c *PipelineConverter) Convert(source string) (string, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	out, err := c.pipeline.RunString("\n" + source)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(out, "\n"), nil
}

var defaultConverter = New(rule.Options{})

// Convert converts source with the default rule catalog.
func Convert(source string) (string, error) {
	return defaultConverter.Convert(source)
}

// Recorder stores conversion history. *history.Store implements it.
type Recorder interface {
	BeginRun(ctx context.Context) (types.RunSummary, error)
	FinishRun(ctx context.Context, run types.RunSummary) error
	Unchanged(ctx context.Context, pair types.FilePair, sourceHash, settingsHash string) (bool, error)
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Fingerprinter is implemented by converters whose output depends on
// their configuration.
type Fingerprinter interface {
	Fingerprint() string
}

// SettingsHash identifies the output c produces when writing targets in
// targetEncoding. Converters without a Fingerprint are identified by type.
func SettingsHash(c Converter, targetEncoding string) string {
	fp := fmt.Sprintf("%T\n", c)
	if f, ok := c.(Fingerprinter); ok {
		fp = f.Fingerprint()
	}
	return history.Hash(fp + "target-encoding=" + strings.ToLower(targetEncoding))
}

// Options controls how files are read, written and recorded.
type Options struct {
	Encoding types.EncodingConfig

	// Workers bounds parallel conversions. Zero or less means GOMAXPROCS.
	Workers int

	// SkipUnchanged skips sources whose content and conversion settings
	// match the last successful conversion held by Recorder.
	SkipUnchanged bool

	// Recorder, when set, receives a record for every converted or failed
	// file.
	Recorder Recorder

	// RunID is stored with each record.
	RunID string
}

// OptionsFromConfig builds Options from a conversion configuration. The
// recorder is left unset.
func OptionsFromConfig(cfg types.ConversionConfig) Options {
	return Options{
		Encoding:      cfg.EncodingConfig,
		Workers:       cfg.Workers,
		SkipUnchanged: cfg.SkipUnchanged,
	}
}

// FileResult is the outcome of converting one file.
type FileResult struct {
	Pair     types.FilePair
	Status   types.ConversionStatus
	Err      error
	Hash     string
	Settings string
	Stats    types.MarkdownStats
}

// ConvertFile converts pair.Source into pair.Target, writing one status
// line to w. Errors are reported in the result rather than returned so
// that a batch can continue past a failing file.
func ConvertFile(ctx context.Context, c Converter, pair types.FilePair, opts Options, w io.Writer) FileResult {
	res := FileResult{Pair: pair, Settings: SettingsHash(c, opts.Encoding.Target)}
	name := filepath.Base(pair.Source)

	fail := func(err error) FileResult {
		res.Status = types.ConversionFailed
		res.Err = err
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		record(ctx, opts, res, w)
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	src := textfile.New(pair.Source, opts.Encoding.Source, opts.Encoding.IgnoreDecodeErrors)
	content, err := src.Content()
	if err != nil {
		return fail(err)
	}
	res.Hash = history.Hash(content)

	if opts.SkipUnchanged && opts.Recorder != nil {
		unchanged, err := opts.Recorder.Unchanged(ctx, pair, res.Hash, res.Settings)
		if err != nil {
			return fail(err)
		}
		if unchanged {
			res.Status = types.ConversionSkipped
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", name)
			return res
		}
	}

	out, err := c.Convert(content)
	if err != nil {
		return fail(err)
	}

	dst := textfile.New(pair.Target, opts.Encoding.Target, false)
	if err := dst.Write(out); err != nil {
		return fail(err)
	}

	res.Status = types.ConversionDone
	res.Stats = inspect.Analyze(out)
	fmt.Fprintf(w, "converted: %s -> %s\n", name, filepath.Base(pair.Target))
	record(ctx, opts, res, w)
	return res
}

func record(ctx context.Context, opts Options, res FileResult, w io.Writer) {
	if opts.Recorder == nil {
		return
	}
	rec := types.ConversionRecord{
		SourcePath:   res.Pair.Source,
		TargetPath:   res.Pair.Target,
		SourceHash:   res.Hash,
		SettingsHash: res.Settings,
		Status:       res.Status,
		RunID:        opts.RunID,
		ConvertedAt:  time.Now().UTC(),
		Stats:        res.Stats,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	// A cancelled context must not lose the record of finished work.
	if err := opts.Recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		fmt.Fprintf(w, "warning: recording %s: %v\n", filepath.Base(res.Pair.Source), err)
	}
}
