// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pmwiki2md/internal/document"
)

// indentUnit is the Markdown indentation added per nesting level.
const indentUnit = "  "

// LevelConfig configures a nested line-leading marker conversion.
type LevelConfig struct {
	// Marker is the PmWiki marker repeated once per level, e.g. "*".
	Marker string
	// Target is the Markdown marker emitted once, e.g. "-".
	Target string
}

// LevelReplace converts nested list markers. A line starting with the marker
// repeated n times becomes n indentation units, the target marker and a
// space. Deeper levels are converted first so that "***" is never matched as
// a "*" prefix.
type LevelReplace struct {
	name string
	cfg  LevelConfig
}

// NewLevelReplace returns a nested level rule.
func NewLevelReplace(name string, cfg LevelConfig) *LevelReplace {
	return &LevelReplace{name: name, cfg: cfg}
}

// Name returns the rule name.
func (r *LevelReplace) Name() string { return r.name }

// Config returns the rule configuration.
func (r *LevelReplace) Config() LevelConfig { return r.cfg }

func (r *LevelReplace) String() string {
	return fmt.Sprintf("levels %q -> %q", r.cfg.Marker, r.cfg.Target)
}

// Apply converts every level from the deepest one found down to 1.
func (r *LevelReplace) Apply(doc *document.Document) (*document.Document, error) {
	if r.cfg.Marker == "" {
		return nil, fmt.Errorf("rule %s: %w", r.name, ErrEmptyToken)
	}

	snapshot := doc
	for level := HighestLevel(doc, r.cfg.Marker); level >= 1; level-- {
		step := NewTokenReplace(fmt.Sprintf("%s/%d", r.name, level), r.levelToken(level))
		next, n, err := step.apply(snapshot)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.name, err)
		}
		if n > 0 {
			snapshot = next
		}
	}

	if snapshot == doc {
		return doc.Copy(), nil
	}
	return snapshot, nil
}

// levelToken returns the token replacement for one nesting level.
func (r *LevelReplace) levelToken(level int) TokenConfig {
	return TokenConfig{
		Old: "\n" + strings.Repeat(r.cfg.Marker, level),
		New: "\n" + strings.Repeat(indentUnit, level) + r.cfg.Target + " ",
	}
}

// HighestLevel returns the longest run of marker found at the start of any
// line of doc, and at least 1.
func HighestLevel(doc *document.Document, marker string) int {
	highest := 1
	if marker == "" {
		return highest
	}
	for _, line := range doc.Lines() {
		run := 0
		for strings.HasPrefix(line, marker) {
			run++
			line = line[len(marker):]
		}
		if run > highest {
			highest = run
		}
	}
	return highest
}
