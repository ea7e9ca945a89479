// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRow(t *testing.T) {
	assert.True(t, IsRow("||a||b||"))
	assert.True(t, IsRow("||border=1"))
	assert.False(t, IsRow(" ||a||"))
	assert.False(t, IsRow("a || b"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Table
	}{
		{
			name: "header and body",
			lines: []string{
				"||border=1 width=80%",
				"||!Fruit ||!Colour ||",
				"||Apple ||Red ||",
				"||Banana ||Yellow ||",
			},
			want: Table{
				Attributes: "border=1 width=80%",
				Header:     []string{"Fruit", "Colour"},
				Rows:       [][]string{{"Apple", "Red"}, {"Banana", "Yellow"}},
			},
		},
		{
			name:  "first row promoted to header",
			lines: []string{"||a||b||", "||c||d||"},
			want: Table{
				Header: []string{"a", "b"},
				Rows:   [][]string{{"c", "d"}},
			},
		},
		{
			name:  "ragged rows are padded",
			lines: []string{"||!x||", "||1||2||3||"},
			want: Table{
				Header: []string{"x", "", ""},
				Rows:   [][]string{{"1", "2", "3"}},
			},
		},
		{
			name:  "attributes only",
			lines: []string{"||border=1"},
			want:  Table{Attributes: "border=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.lines))
		})
	}
}

func TestMarkdown(t *testing.T) {
	tbl := Parse([]string{"||!Fruit ||!Colour ||", "||Apple ||Red ||"})
	want := "| Fruit | Colour |\n| --- | --- |\n| Apple | Red |"
	assert.Equal(t, want, tbl.Markdown())
}

func TestMarkdownEscapesPipes(t *testing.T) {
	tbl := Table{Header: []string{"a|b"}}
	assert.Equal(t, "| a\\|b |\n| --- |", tbl.Markdown())
}

func TestTokens(t *testing.T) {
	tbl := Parse([]string{"||!h||", "||''c''||"})
	toks := tbl.Tokens()
	require.NotEmpty(t, toks)

	var cells []string
	for _, tok := range toks {
		if tok.Cell {
			cells = append(cells, tok.Text)
		}
	}
	assert.Equal(t, []string{"h", "''c''"}, cells)
	assert.Nil(t, Table{}.Tokens())
	assert.Equal(t, "", Table{}.Markdown())
}
