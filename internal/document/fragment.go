// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document holds the working representation of a page under
// conversion: an ordered sequence of text fragments, each flagged as still
// eligible for conversion or already final.
package document

import "strings"

// Fragment is a span of document text. Eligible fragments may still be
// rewritten by later rules; ineligible ones are literal output.
type Fragment struct {
	Content  string
	Eligible bool
}

// Text returns an eligible fragment holding s.
func Text(s string) Fragment {
	return Fragment{Content: s, Eligible: true}
}

// Literal returns an ineligible fragment holding s. Inserted markup and
// replacement tokens are always literals.
func Literal(s string) Fragment {
	return Fragment{Content: s}
}

// Copy returns an independent copy of f.
func (f Fragment) Copy() Fragment {
	return f
}

// WithContent returns a copy of f holding s. Eligibility is preserved.
func (f Fragment) WithContent(s string) Fragment {
	f.Content = s
	return f
}

// WithContentEligible returns a copy of f holding s with the given
// eligibility.
func (f Fragment) WithContentEligible(s string, eligible bool) Fragment {
	f.Content = s
	f.Eligible = eligible
	return f
}

// IsEmpty reports whether f holds the empty string.
func (f Fragment) IsEmpty() bool {
	return f.Content == ""
}

// Partition splits f around the first occurrence of sep. When sep is absent
// before holds the whole content and sep and after are empty.
func (f Fragment) Partition(sep string) (before, separator, after Fragment) {
	b, a, found := strings.Cut(f.Content, sep)
	if !found {
		return f.WithContent(f.Content), f.WithContent(""), f.WithContent("")
	}
	return f.WithContent(b), f.WithContent(sep), f.WithContent(a)
}

// RightPartition splits f around the last occurrence of sep. When sep is
// absent after holds the whole content and before and sep are empty.
func (f Fragment) RightPartition(sep string) (before, separator, after Fragment) {
	i := strings.LastIndex(f.Content, sep)
	if i < 0 {
		return f.WithContent(""), f.WithContent(""), f.WithContent(f.Content)
	}
	return f.WithContent(f.Content[:i]), f.WithContent(sep), f.WithContent(f.Content[i+len(sep):])
}
