// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rule implements the conversion rules that rewrite PmWiki markup
// into Markdown, and the pipeline that applies them in order.
//
// Every rule is a pure transform: Apply never modifies the document it is
// given and returns a new one. Rules only touch eligible fragments and mark
// the markup they insert as ineligible, so later rules never re-enter
// converted output.
package rule

import (
	"errors"

	"github.com/pdiddy/pmwiki2md/internal/document"
)

// ErrEmptyToken is returned by rules configured with an empty token or
// delimiter.
var ErrEmptyToken = errors.New("rule token must not be empty")

// Rule is a single named conversion step applied to a whole document.
type Rule interface {
	// Name identifies the rule in errors and listings (e.g. "italic").
	Name() string

	// Apply returns the converted document. The input is left untouched.
	Apply(doc *document.Document) (*document.Document, error)
}

// decomposer breaks one eligible fragment into its replacement fragments and
// reports how many conversions it performed.
type decomposer func(f document.Fragment) ([]document.Fragment, int)

// applyElementwise copies in, runs decompose over every eligible fragment of
// the copy and splices the results in place. It returns the new document and
// the total number of conversions.
func applyElementwise(in *document.Document, decompose decomposer) (*document.Document, int, error) {
	out := in.Copy()

	// Replace shifts positions, so walk a snapshot of the fragment pointers.
	snapshot := make([]*document.Fragment, out.Len())
	for i := range snapshot {
		snapshot[i] = out.At(i)
	}

	total := 0
	for _, f := range snapshot {
		if !f.Eligible {
			continue
		}
		converted, n := decompose(*f)
		if n == 0 {
			continue
		}
		if err := out.Replace(f, converted); err != nil {
			return nil, 0, err
		}
		total += n
	}
	return out, total, nil
}

// appendNonEmpty appends the fragments that carry content.
func appendNonEmpty(dst []document.Fragment, frags ...document.Fragment) []document.Fragment {
	for _, f := range frags {
		if !f.IsEmpty() {
			dst = append(dst, f)
		}
	}
	return dst
}
