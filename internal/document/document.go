// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFragmentNotFound is returned when a fragment is looked up in a document
// that does not hold it. It signals a defect in a rule, not bad input.
var ErrFragmentNotFound = errors.New("fragment not found in document")

// Document is an ordered sequence of fragments. Fragments are owned by the
// document and located by identity; constructors and Copy always allocate
// fresh fragments so two documents never share one.
type Document struct {
	fragments []*Fragment
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// FromString wraps s into a document holding a single eligible fragment.
func FromString(s string) *Document {
	return FromFragments([]Fragment{Text(s)})
}

// FromFragments returns a document holding copies of frags, in order.
func FromFragments(frags []Fragment) *Document {
	d := &Document{fragments: make([]*Fragment, 0, len(frags))}
	for _, f := range frags {
		c := f.Copy()
		d.fragments = append(d.fragments, &c)
	}
	return d
}

// Copy returns a document holding fresh copies of every fragment in d.
func (d *Document) Copy() *Document {
	return FromFragments(d.Fragments())
}

// Len returns the number of fragments.
func (d *Document) Len() int {
	return len(d.fragments)
}

// At returns the fragment at position i. The pointer is owned by d.
func (d *Document) At(i int) *Fragment {
	return d.fragments[i]
}

// Fragments returns value copies of the fragments in order.
func (d *Document) Fragments() []Fragment {
	out := make([]Fragment, len(d.fragments))
	for i, f := range d.fragments {
		out[i] = *f
	}
	return out
}

// Contents returns the content of every fragment in order.
func (d *Document) Contents() []string {
	out := make([]string, len(d.fragments))
	for i, f := range d.fragments {
		out[i] = f.Content
	}
	return out
}

// String serializes the document by concatenating fragment contents.
func (d *Document) String() string {
	var b strings.Builder
	for _, f := range d.fragments {
		b.WriteString(f.Content)
	}
	return b.String()
}

// Lines returns the serialized document split on newlines.
func (d *Document) Lines() []string {
	return strings.Split(d.String(), "\n")
}

// Locate returns the position of f, compared by identity.
func (d *Document) Locate(f *Fragment) (int, error) {
	for i, candidate := range d.fragments {
		if candidate == f {
			return i, nil
		}
	}
	return -1, fmt.Errorf("locating %q: %w", truncate(f.Content), ErrFragmentNotFound)
}

// Replace removes f and splices copies of replacements into its position.
func (d *Document) Replace(f *Fragment, replacements []Fragment) error {
	i, err := d.Locate(f)
	if err != nil {
		return err
	}

	spliced := make([]*Fragment, 0, len(d.fragments)-1+len(replacements))
	spliced = append(spliced, d.fragments[:i]...)
	for _, r := range replacements {
		c := r.Copy()
		spliced = append(spliced, &c)
	}
	spliced = append(spliced, d.fragments[i+1:]...)
	d.fragments = spliced
	return nil
}

func truncate(s string) string {
	const limit = 32
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
