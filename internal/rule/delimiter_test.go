// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pmwiki2md/internal/document"
)

func subscript() *DelimiterPair {
	return NewDelimiterPair("subscript",
		PairConfig{Begin: "'_", End: "_'"},
		LiteralRewriter{ToBegin: "<sub>", ToEnd: "</sub>"})
}

func link() *DelimiterPair {
	return NewDelimiterPair("link", PairConfig{Begin: "[[", End: "]]"}, LinkRewriter{})
}

func TestDelimiterPairLiteral(t *testing.T) {
	out, err := subscript().Apply(document.FromString("H'_2_'O"))
	require.NoError(t, err)

	assert.Equal(t, []string{"H", "<sub>", "2", "</sub>", "O"}, out.Contents())
	assert.Equal(t, []bool{true, false, true, false, true}, eligibility(out))
}

func TestDelimiterPairFragmentCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		spans int
		gaps  int
	}{
		{"single span", "'_x_'", 1, 0},
		{"leading gap", "a'_x_'", 1, 1},
		{"two spans two gaps", "a'_x_'b'_y_'", 2, 2},
		{"adjacent spans", "'_x_''_y_'", 2, 0},
		{"three gaps", "a'_x_'b'_y_'c", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := subscript().Apply(document.FromString(tt.input))
			require.NoError(t, err)
			assert.Equal(t, 3*tt.spans+tt.gaps, out.Len())
		})
	}
}

func TestDelimiterPairUnmatchedBegin(t *testing.T) {
	out, err := subscript().Apply(document.FromString("a'_xyz"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "<sub>", "xyz", "</sub>"}, out.Contents())
}

func TestDelimiterPairBeginAtEnd(t *testing.T) {
	out, err := subscript().Apply(document.FromString("abc'_"))
	require.NoError(t, err)
	assert.Equal(t, []string{"abc'_"}, out.Contents())
}

func TestDelimiterPairNoBegin(t *testing.T) {
	in := document.FromString("plain text")
	out, err := subscript().Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"plain text"}, out.Contents())
	assert.NotSame(t, in.At(0), out.At(0))
}

func TestDelimiterPairEmptyDelimiter(t *testing.T) {
	r := NewDelimiterPair("broken", PairConfig{Begin: "[[", End: ""}, LinkRewriter{})
	_, err := r.Apply(document.FromString("[[x]]"))
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestProtectedRewriterFreezesContent(t *testing.T) {
	pre := NewDelimiterPair("preformatted-inline",
		PairConfig{Begin: "[@", End: "@]"},
		ProtectedRewriter{ToBegin: "`", ToEnd: "`"})

	p := NewPipeline(pre, italic())
	out, err := p.RunString("''a'' [@x''y@]")
	require.NoError(t, err)
	assert.Equal(t, "_a_ `x''y`", out)
}

func TestLinkRewriter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "nameless",
			input: "[[http://example.com]]",
			want:  []string{"<", "http://example.com", ">"},
		},
		{
			name:  "named",
			input: "see [[http://example.com | Example]] now",
			want:  []string{"see ", "[", "Example", "]", "(", "http://example.com", ")", " now"},
		},
		{
			name:  "last separator wins",
			input: "[[http://a.b | x | y]]",
			want:  []string{"[", "y", "]", "(", "http://a.b | x", ")"},
		},
		{
			name:  "empty name is nameless",
			input: "[[http://a.b | ]]",
			want:  []string{"<", "http://a.b", ">"},
		},
		{
			name:  "wiki page",
			input: "[[Main.HomePage]]",
			want:  []string{"<", "Main.HomePage", ">"},
		},
		{
			name:  "image",
			input: "[[https://example.com/img/logo.PNG]]",
			want:  []string{"![", "](https://example.com/img/logo.PNG)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := link().Apply(document.FromString(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Contents())
		})
	}
}

func TestLinkNameStaysEligible(t *testing.T) {
	out, err := link().Apply(document.FromString("[[http://a.b | ''x'']]"))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, false, false, false}, eligibility(out))

	final, err := italic().Apply(out)
	require.NoError(t, err)
	assert.Equal(t, "[_x_](http://a.b)", final.String())
}

func TestLooksLikeImageURL(t *testing.T) {
	assert.True(t, looksLikeImageURL("http://x.org/a.png"))
	assert.True(t, looksLikeImageURL("https://x.org/a/b.svg?v=2"))
	assert.False(t, looksLikeImageURL("logo.png"))
	assert.False(t, looksLikeImageURL("http://x.org/page"))
}
