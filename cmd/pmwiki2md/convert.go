// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pmwiki2md/internal/convert"
	"github.com/pdiddy/pmwiki2md/internal/history"
	"github.com/pdiddy/pmwiki2md/internal/rule"
	"github.com/pdiddy/pmwiki2md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert SOURCE_DIR TARGET_DIR",
	Short: "Convert a directory of PmWiki files to Markdown",
	Long: `Convert reads every PmWiki file directly inside SOURCE_DIR and writes the
Markdown result to TARGET_DIR under the same name with the target suffix.
Subdirectories are not descended into.

A file that fails to read, convert or write is reported and the remaining
files are still converted; the command exits non-zero when any file failed.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: bindFlags,
	RunE:    runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(args[0], args[1])

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, closeHistory, err := conversionOptions(cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	conv := convert.New(rule.Options{Tables: cfg.Tables})
	result, err := convert.ConvertDir(ctx, conv, cfg.PairingConfig, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		if err := result.WriteReport(cfg.ReportPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", cfg.ReportPath)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// conversionOptions builds batch options for cfg, opening the history
// store when one is configured. The returned func closes it.
func conversionOptions(cfg types.ConversionConfig) (convert.Options, func(), error) {
	opts := convert.OptionsFromConfig(cfg)
	if cfg.HistoryPath == "" {
		return opts, func() {}, nil
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return convert.Options{}, nil, err
	}
	opts.Recorder = store
	return opts, func() { store.Close() }, nil
}

func init() {
	addConversionFlags(convertCmd)
	convertCmd.Flags().String("report", "", "write a YAML report of the run to this path")

	rootCmd.AddCommand(convertCmd)
}
