// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// Report is the YAML form of a batch result.
type Report struct {
	RunID     string       `yaml:"run_id,omitempty"`
	Converted int          `yaml:"converted"`
	Skipped   int          `yaml:"skipped"`
	Failed    int          `yaml:"failed"`
	Total     int          `yaml:"total"`
	Files     []ReportFile `yaml:"files"`
}

// ReportFile describes one file of a batch.
type ReportFile struct {
	Source string                 `yaml:"source"`
	Target string                 `yaml:"target"`
	Status types.ConversionStatus `yaml:"status"`
	Error  string                 `yaml:"error,omitempty"`
	Stats  *types.MarkdownStats   `yaml:"stats,omitempty"`
}

// Report builds the report of r.
func (r BatchResult) Report() Report {
	rep := Report{
		RunID:     r.RunID,
		Converted: r.Converted,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
		Total:     r.Total(),
		Files:     make([]ReportFile, len(r.Files)),
	}
	for i, f := range r.Files {
		rf := ReportFile{Source: f.Pair.Source, Target: f.Pair.Target, Status: f.Status}
		if f.Err != nil {
			rf.Error = f.Err.Error()
		}
		if f.Status == types.ConversionDone {
			stats := f.Stats
			rf.Stats = &stats
		}
		rep.Files[i] = rf
	}
	return rep
}

// WriteReport writes the batch report to path as YAML.
func (r BatchResult) WriteReport(path string) error {
	data, err := yaml.Marshal(r.Report())
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
