// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rule

// Options selects optional rules when building the catalog.
type Options struct {
	// Tables enables conversion of PmWiki simple tables.
	Tables bool
}

// token is a shorthand for catalog entries.
func token(name, old, repl string) Rule {
	return NewTokenReplace(name, TokenConfig{Old: old, New: repl})
}

// Catalog returns the PmWiki to Markdown rules in application order.
//
// The order matters: preformatted spans are frozen before any inline rule
// runs, bold runs before italic, and longer markers run before their
// prefixes.
func Catalog(opts Options) []Rule {
	rules := []Rule{
		NewDelimiterPair("preformatted-block",
			PairConfig{Begin: "[@\n", End: "@]"},
			ProtectedRewriter{ToBegin: "```\n", ToEnd: "```"}),
		NewDelimiterPair("preformatted-inline",
			PairConfig{Begin: "[@", End: "@]"},
			ProtectedRewriter{ToBegin: "`", ToEnd: "`"}),
	}

	if opts.Tables {
		rules = append(rules, NewTableBlock("table"))
	}

	rules = append(rules,
		token("bold", "'''", "__"),
		token("italic", "''", "_"),
		token("italic-bold", "'''''", "**_"),

		token("underline-begin", "{+", "<u>"),
		token("underline-end", "+}", "</u>"),
		token("strikethrough-begin", "{-", "~~"),
		token("strikethrough-end", "-}", "~~"),

		token("small-small-begin", "[--", "<sub>"),
		token("small-small-end", "--]", "</sub>"),
		token("small-begin", "[-", "<sub>"),
		token("small-end", "-]", "</sub>"),
		token("big-big-begin", "[++", "<sup>"),
		token("big-big-end", "++]", "</sup>"),
		token("big-begin", "[+", "<sup>"),
		token("big-end", "+]", "</sup>"),

		token("header-3", "\n!!!", "\n### "),
		token("header-2", "\n!!", "\n## "),
		token("header-1", "\n!", "\n# "),

		NewDelimiterPair("subscript",
			PairConfig{Begin: "'_", End: "_'"},
			LiteralRewriter{ToBegin: "<sub>", ToEnd: "</sub>"}),
		NewDelimiterPair("superscript",
			PairConfig{Begin: "'^", End: "^'"},
			LiteralRewriter{ToBegin: "<sup>", ToEnd: "</sup>"}),

		NewLevelReplace("bullet-list", LevelConfig{Marker: "*", Target: "-"}),
		NewLevelReplace("numbered-list", LevelConfig{Marker: "#", Target: "1."}),

		token("double-newline", `\`, "\n\n"),

		NewDelimiterPair("link",
			PairConfig{Begin: "[[", End: "]]"},
			LinkRewriter{}),
		token("link-window-target", "%newwin%", ""),
		token("link-special-closing-tag", "%%", ""),
	)
	return rules
}

// NewCatalogPipeline returns a pipeline running Catalog(opts).
func NewCatalogPipeline(opts Options) *Pipeline {
	return NewPipeline(Catalog(opts)...)
}

// DefaultPipeline returns the pipeline used by a plain conversion.
func DefaultPipeline() *Pipeline {
	return NewCatalogPipeline(Options{})
}
