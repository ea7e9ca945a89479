//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Convert builds the CLI and converts wiki/source into wiki/markdown,
// skipping pages unchanged since the last run.
func Convert() error {
	mg.Deps(Init, Build)

	fmt.Printf("[convert] %s -> %s\n", wikiSourceDir, wikiMarkdownDir)
	return sh.RunV(binPath(), "convert", wikiSourceDir, wikiMarkdownDir,
		"--skip-unchanged", "--history", historyDir+"/history.db")
}

// History prints the recorded conversions of the local wiki.
func History() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "history", "--history", historyDir+"/history.db")
}
