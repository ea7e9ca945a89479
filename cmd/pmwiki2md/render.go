// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmwiki2md/internal/convert"
	"github.com/pdiddy/pmwiki2md/internal/rule"
	"github.com/pdiddy/pmwiki2md/internal/textfile"
)

var renderCmd = &cobra.Command{
	Use:   "render [FILE]",
	Short: "Convert one PmWiki file (or standard input) to standard output",
	Long: `Render converts a single PmWiki page and prints the Markdown. Without
FILE the page is read from standard input as UTF-8.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	var source string
	if len(args) == 1 {
		enc := encodingConfig()
		content, err := textfile.New(args[0], enc.Source, enc.IgnoreDecodeErrors).Content()
		if err != nil {
			return err
		}
		source = content
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		source = string(data)
	}

	out, err := convert.New(rule.Options{Tables: viper.GetBool(configKey("tables"))}).Convert(source)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func init() {
	addEncodingFlags(renderCmd)

	rootCmd.AddCommand(renderCmd)
}
