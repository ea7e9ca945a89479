// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table parses PmWiki simple tables and renders them as GitHub
// flavored Markdown tables.
//
// A simple table is a run of lines starting with "||". Cells are separated
// by "||" and a cell starting with "!" is a header cell. A line holding only
// "||" followed by attributes (e.g. "||border=1 width=80%") configures the
// table and carries no cells.
package table

import "strings"

const (
	cellSeparator = "||"
	headerMarker  = "!"
)

// Table is a parsed table. Every row has exactly Columns() cells.
type Table struct {
	Attributes string
	Header     []string
	Rows       [][]string
}

// Token is a piece of rendered output. Cell tokens carry cell text; the
// others carry table structure.
type Token struct {
	Text string
	Cell bool
}

// IsRow reports whether line belongs to a simple table.
func IsRow(line string) bool {
	return strings.HasPrefix(line, cellSeparator)
}

// Parse builds a table from consecutive table lines. The first row becomes
// the Markdown header whether or not its cells are marked with "!", since
// Markdown tables require one; header markers elsewhere are dropped.
func Parse(lines []string) Table {
	var t Table
	var rows [][]string

	for _, line := range lines {
		body := strings.TrimPrefix(strings.TrimRight(line, " \t\r"), cellSeparator)
		if !strings.Contains(body, cellSeparator) && strings.Contains(body, "=") {
			t.Attributes = strings.TrimSpace(body)
			continue
		}
		body = strings.TrimSuffix(body, cellSeparator)

		var cells []string
		for _, raw := range strings.Split(body, cellSeparator) {
			cell := strings.TrimSpace(raw)
			cell = strings.TrimSpace(strings.TrimPrefix(cell, headerMarker))
			cells = append(cells, cell)
		}
		rows = append(rows, cells)
	}

	if len(rows) == 0 {
		return t
	}
	t.Header = rows[0]
	t.Rows = rows[1:]
	t.normalize()
	return t
}

// Columns returns the number of columns.
func (t Table) Columns() int {
	return len(t.Header)
}

// IsEmpty reports whether the table has no rows at all.
func (t Table) IsEmpty() bool {
	return len(t.Header) == 0 && len(t.Rows) == 0
}

func (t *Table) normalize() {
	width := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > width {
			width = len(r)
		}
	}
	t.Header = pad(t.Header, width)
	for i := range t.Rows {
		t.Rows[i] = pad(t.Rows[i], width)
	}
}

func pad(cells []string, width int) []string {
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}

// Tokens renders the table as Markdown tokens. The output has no trailing
// newline.
func (t Table) Tokens() []Token {
	if t.IsEmpty() {
		return nil
	}
	var out []Token
	out = appendRow(out, t.Header)
	out = append(out, Token{Text: "\n" + separatorRow(t.Columns())})
	for _, r := range t.Rows {
		out = append(out, Token{Text: "\n"})
		out = appendRow(out, r)
	}
	return out
}

// Markdown renders the table as a Markdown string.
func (t Table) Markdown() string {
	var b strings.Builder
	for _, tok := range t.Tokens() {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func appendRow(out []Token, cells []string) []Token {
	out = append(out, Token{Text: "| "})
	for i, c := range cells {
		if i > 0 {
			out = append(out, Token{Text: " | "})
		}
		if c != "" {
			out = append(out, Token{Text: escapePipes(c), Cell: true})
		}
	}
	return append(out, Token{Text: " |"})
}

func separatorRow(columns int) string {
	cells := make([]string, columns)
	for i := range cells {
		cells[i] = "---"
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
