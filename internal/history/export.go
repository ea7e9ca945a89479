// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// Export is the serialized form of the whole history.
type Export struct {
	Runs        []types.RunSummary       `json:"runs" yaml:"runs"`
	Conversions []types.ConversionRecord `json:"conversions" yaml:"conversions"`
}

// Snapshot reads all runs and conversion records.
func (s *Store) Snapshot(ctx context.Context) (Export, error) {
	runs, err := s.Runs(ctx)
	if err != nil {
		return Export{}, err
	}
	records, err := s.List(ctx)
	if err != nil {
		return Export{}, err
	}
	return Export{Runs: runs, Conversions: records}, nil
}

// WriteYAML writes the history snapshot to w as YAML.
func (s *Store) WriteYAML(ctx context.Context, w io.Writer) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON writes the history snapshot to w as indented JSON.
func (s *Store) WriteJSON(ctx context.Context, w io.Writer) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
