// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pmwiki2md/internal/document"
)

// TokenConfig configures a context-free token replacement.
type TokenConfig struct {
	// Old is the literal text to replace. It must not be empty.
	Old string
	// New is inserted in place of every occurrence of Old, as a literal.
	New string
}

// TokenReplace replaces every occurrence of a token within eligible
// fragments. The serialized result matches strings.ReplaceAll, but the
// replacement is kept as its own ineligible fragment so that other rules can
// still act on the text around it.
type TokenReplace struct {
	name string
	cfg  TokenConfig
}

// NewTokenReplace returns a token replacement rule.
func NewTokenReplace(name string, cfg TokenConfig) *TokenReplace {
	return &TokenReplace{name: name, cfg: cfg}
}

// Name returns the rule name.
func (r *TokenReplace) Name() string { return r.name }

// Config returns the rule configuration.
func (r *TokenReplace) Config() TokenConfig { return r.cfg }

func (r *TokenReplace) String() string {
	return fmt.Sprintf("token %q -> %q", r.cfg.Old, r.cfg.New)
}

// Apply replaces the token throughout the eligible fragments of doc.
func (r *TokenReplace) Apply(doc *document.Document) (*document.Document, error) {
	out, _, err := r.apply(doc)
	return out, err
}

func (r *TokenReplace) apply(doc *document.Document) (*document.Document, int, error) {
	if r.cfg.Old == "" {
		return nil, 0, fmt.Errorf("rule %s: %w", r.name, ErrEmptyToken)
	}
	return applyElementwise(doc, r.decompose)
}

// decompose splits f on Old and interleaves a literal New between the
// pieces. No separator follows the last piece, and empty pieces are dropped.
func (r *TokenReplace) decompose(f document.Fragment) ([]document.Fragment, int) {
	pieces := strings.Split(f.Content, r.cfg.Old)
	if len(pieces) == 1 {
		return []document.Fragment{f}, 0
	}

	out := make([]document.Fragment, 0, 2*len(pieces)-1)
	for i, p := range pieces {
		if i > 0 {
			out = appendNonEmpty(out, document.Literal(r.cfg.New))
		}
		out = appendNonEmpty(out, f.WithContent(p))
	}
	return out, len(pieces) - 1
}
