// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/pmwiki2md/internal/document"
)

// Delimited is a span found between a begin and an end delimiter.
type Delimited struct {
	Begin    document.Fragment
	Enclosed document.Fragment
	End      document.Fragment
}

// Fragments returns the three parts in order.
func (d Delimited) Fragments() []document.Fragment {
	return []document.Fragment{d.Begin, d.Enclosed, d.End}
}

// Rewriter decides how a delimited span is rendered. It may return several
// spans, e.g. a named link becomes a name span and an address span.
type Rewriter interface {
	Rewrite(d Delimited) []Delimited
}

// PairConfig configures the delimiters a DelimiterPair scans for.
type PairConfig struct {
	Begin string
	End   string
}

// DelimiterPair finds Begin...End spans in eligible fragments and hands each
// span to its Rewriter. A Begin without a matching End encloses the rest of
// the fragment.
type DelimiterPair struct {
	name     string
	cfg      PairConfig
	rewriter Rewriter
}

// NewDelimiterPair returns a delimiter pair rule.
func NewDelimiterPair(name string, cfg PairConfig, rw Rewriter) *DelimiterPair {
	return &DelimiterPair{name: name, cfg: cfg, rewriter: rw}
}

// Name returns the rule name.
func (r *DelimiterPair) Name() string { return r.name }

// Config returns the delimiters.
func (r *DelimiterPair) Config() PairConfig { return r.cfg }

func (r *DelimiterPair) String() string {
	return fmt.Sprintf("pair %q...%q %v", r.cfg.Begin, r.cfg.End, r.rewriter)
}

// Apply rewrites every delimited span in the eligible fragments of doc.
func (r *DelimiterPair) Apply(doc *document.Document) (*document.Document, error) {
	if r.cfg.Begin == "" || r.cfg.End == "" {
		return nil, fmt.Errorf("rule %s: %w", r.name, ErrEmptyToken)
	}
	out, _, err := applyElementwise(doc, r.decompose)
	return out, err
}

func (r *DelimiterPair) decompose(f document.Fragment) ([]document.Fragment, int) {
	var out []document.Fragment
	spans := 0
	unprocessed := f

	for {
		before, _, after := unprocessed.Partition(r.cfg.Begin)
		if after.IsEmpty() {
			out = appendNonEmpty(out, unprocessed)
			break
		}
		enclosed, _, rest := after.Partition(r.cfg.End)
		out = appendNonEmpty(out, before)

		found := Delimited{
			Begin:    document.Literal(r.cfg.Begin),
			Enclosed: enclosed,
			End:      document.Literal(r.cfg.End),
		}
		for _, d := range r.rewriter.Rewrite(found) {
			out = appendNonEmpty(out, d.Fragments()...)
		}
		spans++
		unprocessed = rest
	}

	if len(out) == 0 {
		return []document.Fragment{f}, 0
	}
	return out, spans
}

// LiteralRewriter swaps the delimiters for fixed literals and leaves the
// enclosed text eligible for further conversion.
type LiteralRewriter struct {
	ToBegin string
	ToEnd   string
}

// Rewrite implements Rewriter.
func (lr LiteralRewriter) Rewrite(d Delimited) []Delimited {
	return []Delimited{{
		Begin:    document.Literal(lr.ToBegin),
		Enclosed: d.Enclosed,
		End:      document.Literal(lr.ToEnd),
	}}
}

func (lr LiteralRewriter) String() string {
	return fmt.Sprintf("-> %q...%q", lr.ToBegin, lr.ToEnd)
}

// ProtectedRewriter swaps the delimiters like LiteralRewriter and freezes
// the enclosed text, so preformatted content is never converted.
type ProtectedRewriter struct {
	ToBegin string
	ToEnd   string
}

// Rewrite implements Rewriter.
func (pr ProtectedRewriter) Rewrite(d Delimited) []Delimited {
	return []Delimited{{
		Begin:    document.Literal(pr.ToBegin),
		Enclosed: d.Enclosed.WithContentEligible(d.Enclosed.Content, false),
		End:      document.Literal(pr.ToEnd),
	}}
}

func (pr ProtectedRewriter) String() string {
	return fmt.Sprintf("-> %q...%q (protected)", pr.ToBegin, pr.ToEnd)
}

// linkNameSeparator separates a link address from its display name.
const linkNameSeparator = " | "

// imageSuffixes mark link addresses that point at images.
var imageSuffixes = []string{".jpg", ".png", ".gif", ".svg", ".bmp"}

// LinkRewriter renders [[address]] as <address> and [[address | name]] as
// [name](address). Nameless links to image URLs render as images.
type LinkRewriter struct{}

// Rewrite implements Rewriter.
func (LinkRewriter) Rewrite(d Delimited) []Delimited {
	address, name := splitLink(d.Enclosed)

	if name.IsEmpty() {
		if looksLikeImageURL(address.Content) {
			return []Delimited{{
				Begin:    document.Literal("!["),
				Enclosed: document.Literal(""),
				End:      document.Literal("](" + address.Content + ")"),
			}}
		}
		return []Delimited{{
			Begin:    document.Literal("<"),
			Enclosed: document.Literal(address.Content),
			End:      document.Literal(">"),
		}}
	}

	return []Delimited{
		{
			Begin:    document.Literal("["),
			Enclosed: document.Text(name.Content),
			End:      document.Literal("]"),
		},
		{
			Begin:    document.Literal("("),
			Enclosed: document.Literal(address.Content),
			End:      document.Literal(")"),
		},
	}
}

func (LinkRewriter) String() string {
	return "-> <address> | [name](address)"
}

// splitLink separates the address from the optional name. Text without a
// non-empty address before the last separator is all address.
func splitLink(enclosed document.Fragment) (address, name document.Fragment) {
	before, _, after := enclosed.RightPartition(linkNameSeparator)
	if before.IsEmpty() {
		return after, before
	}
	return before, after
}

// looksLikeImageURL reports whether s is an absolute URL whose path ends in a
// known image suffix.
func looksLikeImageURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
