// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

import (
	"fmt"

	"github.com/pdiddy/pmwiki2md/internal/document"
)

// Pipeline applies a fixed, ordered list of rules. It is immutable once
// built and safe to share between goroutines.
type Pipeline struct {
	rules []Rule
}

// NewPipeline returns a pipeline applying rules in the given order.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: append([]Rule(nil), rules...)}
}

// Rules returns the rules in application order.
func (p *Pipeline) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// Run feeds doc through every rule in order. The first failing rule aborts
// the run; no partial result is returned.
func (p *Pipeline) Run(doc *document.Document) (*document.Document, error) {
	current := doc.Copy()
	for _, r := range p.rules {
		next, err := r.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying rule %s: %w", r.Name(), err)
		}
		current = next
	}
	return current, nil
}

// RunString wraps s into a document, runs the pipeline and serializes the
// result.
func (p *Pipeline) RunString(s string) (string, error) {
	out, err := p.Run(document.FromString(s))
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
