// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pairing lists the source files of a conversion run and assigns
// each one its target path.
package pairing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// Discover returns a pair for every eligible file directly inside
// cfg.SourceDir, sorted by file name. Subdirectories are skipped. When
// cfg.SourceSuffix is set only files with that suffix are eligible.
func Discover(cfg types.PairingConfig) ([]types.FilePair, error) {
	entries, err := os.ReadDir(cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", cfg.SourceDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !Eligible(cfg, entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	pairs := make([]types.FilePair, len(names))
	for i, name := range names {
		pairs[i] = Pair(cfg, name)
	}
	return pairs, nil
}

// Eligible reports whether a file name passes the source suffix filter.
func Eligible(cfg types.PairingConfig, name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if cfg.SourceSuffix == "" {
		return true
	}
	return filepath.Ext(name) == DottedSuffix(cfg.SourceSuffix)
}

// Pair builds the file pair for a source file name inside cfg.SourceDir.
func Pair(cfg types.PairingConfig, name string) types.FilePair {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	target := stem
	if cfg.TargetSuffix != "" {
		target += DottedSuffix(cfg.TargetSuffix)
	}
	return types.FilePair{
		Source: filepath.Join(cfg.SourceDir, name),
		Target: filepath.Join(cfg.TargetDir, target),
	}
}

// DottedSuffix returns suffix with exactly one leading dot.
func DottedSuffix(suffix string) string {
	if suffix == "" || strings.HasPrefix(suffix, ".") {
		return suffix
	}
	return "." + suffix
}
