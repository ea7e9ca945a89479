// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pmwiki2md/pkg/types"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want types.MarkdownStats
	}{
		{
			name: "empty",
			doc:  "",
			want: types.MarkdownStats{},
		},
		{
			name: "headings and lists",
			doc:  "# Title\n\n## Sub\n\n- a\n- b\n  - c\n\n1. one\n",
			want: types.MarkdownStats{Headings: 2, ListItems: 4},
		},
		{
			name: "links and images",
			doc:  "see [x](http://e.org) and <http://f.org>\n\n![](http://i.org/a.png)\n",
			want: types.MarkdownStats{Links: 2, Images: 1},
		},
		{
			name: "code and table",
			doc:  "```\ncode\n```\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n",
			want: types.MarkdownStats{CodeBlocks: 1, Tables: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.doc))
		})
	}
}
