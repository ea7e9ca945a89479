// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentPartition(t *testing.T) {
	tests := []struct {
		name                  string
		content, sep          string
		before, middle, after string
	}{
		{"first occurrence", "a--b--c", "--", "a", "--", "b--c"},
		{"missing separator", "abc", "--", "abc", "", ""},
		{"separator at start", "--abc", "--", "", "--", "abc"},
		{"separator at end", "abc--", "--", "abc", "--", ""},
		{"empty content", "", "--", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, s, a := Text(tt.content).Partition(tt.sep)
			assert.Equal(t, tt.before, b.Content)
			assert.Equal(t, tt.middle, s.Content)
			assert.Equal(t, tt.after, a.Content)
		})
	}
}

func TestFragmentRightPartition(t *testing.T) {
	tests := []struct {
		name                  string
		content, sep          string
		before, middle, after string
	}{
		{"last occurrence", "a | b | c", " | ", "a | b", " | ", "c"},
		{"missing separator", "abc", " | ", "", "", "abc"},
		{"single occurrence", "http://x | Name", " | ", "http://x", " | ", "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, s, a := Text(tt.content).RightPartition(tt.sep)
			assert.Equal(t, tt.before, b.Content)
			assert.Equal(t, tt.middle, s.Content)
			assert.Equal(t, tt.after, a.Content)
		})
	}
}

func TestFragmentPartitionKeepsEligibility(t *testing.T) {
	b, s, a := Literal("x|y").Partition("|")
	assert.False(t, b.Eligible)
	assert.False(t, s.Eligible)
	assert.False(t, a.Eligible)
}

func TestFragmentCopies(t *testing.T) {
	f := Text("abc")
	g := f.WithContent("xyz")
	assert.Equal(t, "abc", f.Content)
	assert.Equal(t, "xyz", g.Content)
	assert.True(t, g.Eligible)

	h := f.WithContentEligible("lit", false)
	assert.False(t, h.Eligible)
	assert.True(t, f.Eligible)

	assert.True(t, Text("").IsEmpty())
	assert.False(t, f.Copy().IsEmpty())
}

func TestDocumentFromString(t *testing.T) {
	d := FromString("Cucumbers")
	require.Equal(t, 1, d.Len())
	assert.True(t, d.At(0).Eligible)
	assert.Equal(t, "Cucumbers", d.String())

	assert.Equal(t, 0, New().Len())
	assert.Equal(t, "", New().String())
}

func TestDocumentCopyIsIndependent(t *testing.T) {
	orig := FromFragments([]Fragment{Text("a"), Literal("_"), Text("b")})
	cp := orig.Copy()
	assert.Equal(t, orig.String(), cp.String())

	require.NoError(t, cp.Replace(cp.At(0), []Fragment{Text("z"), Text("z")}))
	cp.At(1).Content = "changed"

	assert.Equal(t, "a_b", orig.String())
	assert.Equal(t, 3, orig.Len())
	assert.Equal(t, "zchanged_b", cp.String())
}

func TestDocumentFromFragmentsCopies(t *testing.T) {
	frags := []Fragment{Text("a")}
	d := FromFragments(frags)
	frags[0].Content = "mutated"
	assert.Equal(t, "a", d.String())
}

func TestDocumentReplace(t *testing.T) {
	d := FromFragments([]Fragment{Text("one "), Text("two"), Text(" three")})
	target := d.At(1)

	require.NoError(t, d.Replace(target, []Fragment{Literal("<"), Text("2"), Literal(">")}))
	assert.Equal(t, []string{"one ", "<", "2", ">", " three"}, d.Contents())
	assert.False(t, d.At(1).Eligible)
	assert.True(t, d.At(2).Eligible)
}

func TestDocumentReplaceWithNothing(t *testing.T) {
	d := FromFragments([]Fragment{Text("a"), Text("b")})
	require.NoError(t, d.Replace(d.At(0), nil))
	assert.Equal(t, []string{"b"}, d.Contents())
}

func TestDocumentLocateForeignFragment(t *testing.T) {
	d := FromString("abc")
	other := FromString("abc")

	_, err := d.Locate(other.At(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFragmentNotFound))

	err = d.Replace(other.At(0), nil)
	assert.ErrorIs(t, err, ErrFragmentNotFound)
	assert.Equal(t, "abc", d.String())
}

func TestDocumentLines(t *testing.T) {
	d := FromFragments([]Fragment{Text("a\n*"), Literal("b\n"), Text("c")})
	assert.Equal(t, []string{"a", "*b", "c"}, d.Lines())
}
