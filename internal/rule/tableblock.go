// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

import (
	"strings"

	"github.com/pdiddy/pmwiki2md/internal/document"
	"github.com/pdiddy/pmwiki2md/internal/table"
)

// TableBlock converts runs of PmWiki simple table lines into Markdown
// tables. Cell text stays eligible so inline markup inside cells is still
// converted; the table structure is literal.
type TableBlock struct {
	name string
}

// NewTableBlock returns a table rule.
func NewTableBlock(name string) *TableBlock {
	return &TableBlock{name: name}
}

// Name returns the rule name.
func (r *TableBlock) Name() string { return r.name }

func (r *TableBlock) String() string { return "table ||...|| -> | ... |" }

// Apply converts every table found in the eligible fragments of doc.
func (r *TableBlock) Apply(doc *document.Document) (*document.Document, error) {
	out, _, err := applyElementwise(doc, r.decompose)
	return out, err
}

func (r *TableBlock) decompose(f document.Fragment) ([]document.Fragment, int) {
	lines := strings.Split(f.Content, "\n")

	var out []document.Fragment
	var text strings.Builder
	flush := func() {
		out = appendNonEmpty(out, f.WithContent(text.String()))
		text.Reset()
	}

	tables := 0
	for i := 0; i < len(lines); {
		if i > 0 {
			text.WriteString("\n")
		}
		if !table.IsRow(lines[i]) {
			text.WriteString(lines[i])
			i++
			continue
		}

		end := i
		for end < len(lines) && table.IsRow(lines[end]) {
			end++
		}
		parsed := table.Parse(lines[i:end])
		if parsed.IsEmpty() {
			// Attribute lines without rows stay as they are.
			text.WriteString(strings.Join(lines[i:end], "\n"))
			i = end
			continue
		}
		flush()
		for _, tok := range parsed.Tokens() {
			if tok.Cell {
				out = appendNonEmpty(out, f.WithContent(tok.Text))
			} else {
				out = appendNonEmpty(out, document.Literal(tok.Text))
			}
		}
		tables++
		i = end
	}
	flush()

	if tables == 0 {
		return []document.Fragment{f}, 0
	}
	return out, tables
}
