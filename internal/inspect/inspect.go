// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect parses converted Markdown and counts the constructs it
// contains. The counts are stored with each conversion record.
package inspect

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// Analyze parses a Markdown document and counts headings, links, images,
// code blocks, list items and tables.
func Analyze(doc string) types.MarkdownStats {
	var stats types.MarkdownStats
	root := markdown.Parser().Parse(text.NewReader([]byte(doc)))

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.(type) {
		case *gmast.Heading:
			stats.Headings++
		case *gmast.Link, *gmast.AutoLink:
			stats.Links++
		case *gmast.Image:
			stats.Images++
		case *gmast.FencedCodeBlock, *gmast.CodeBlock:
			stats.CodeBlocks++
		case *gmast.ListItem:
			stats.ListItems++
		case *extast.Table:
			stats.Tables++
		}
		return gmast.WalkContinue, nil
	})
	return stats
}
