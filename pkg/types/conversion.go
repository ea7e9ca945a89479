// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one file.
type ConversionStatus string

const (
	ConversionSkipped ConversionStatus = "skipped"
	ConversionDone    ConversionStatus = "converted"
	ConversionFailed  ConversionStatus = "failed"
)

// FilePair links a source file to the target file it converts into.
type FilePair struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// MarkdownStats counts the Markdown constructs found in converted output.
type MarkdownStats struct {
	Headings   int `json:"headings" yaml:"headings"`
	Links      int `json:"links" yaml:"links"`
	Images     int `json:"images" yaml:"images"`
	CodeBlocks int `json:"code_blocks" yaml:"code_blocks"`
	ListItems  int `json:"list_items" yaml:"list_items"`
	Tables     int `json:"tables" yaml:"tables"`
}

// ConversionRecord is the history entry for the latest conversion of a
// source file.
type ConversionRecord struct {
	// SourcePath and TargetPath are the converted file pair.
	SourcePath string `json:"source_path" yaml:"source_path"`
	TargetPath string `json:"target_path" yaml:"target_path"`

	// SourceHash is the BLAKE3 hex digest of the decoded source text.
	SourceHash string `json:"source_hash" yaml:"source_hash"`

	// SettingsHash identifies the rules and target encoding the file was
	// converted with.
	SettingsHash string `json:"settings_hash" yaml:"settings_hash"`

	// Status is the outcome; Error holds the failure message, if any.
	Status ConversionStatus `json:"status" yaml:"status"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`

	// RunID identifies the batch run that produced the record.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	ConvertedAt time.Time     `json:"converted_at" yaml:"converted_at"`
	Stats       MarkdownStats `json:"stats" yaml:"stats"`
}

// RunSummary describes one batch conversion run.
type RunSummary struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Converted  int       `json:"converted" yaml:"converted"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Failed     int       `json:"failed" yaml:"failed"`
}
