// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmwiki2md/internal/history"
	"github.com/pdiddy/pmwiki2md/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded conversions",
	Long: `History lists the latest recorded conversion of every source file and
the batch runs that produced them. Use --json or --yaml to export the
whole history.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFlags,
	RunE:    runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString(configKey("history"))
	if path == "" {
		path = history.DefaultPath
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return store.WriteJSON(ctx, w)
	}
	if yamlOutput, _ := cmd.Flags().GetBool("yaml"); yamlOutput {
		return store.WriteYAML(ctx, w)
	}

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		list, err := store.Runs(ctx)
		if err != nil {
			return err
		}
		return printRuns(cmd, list)
	}

	records, err := store.List(ctx)
	if err != nil {
		return err
	}
	return printRecords(cmd, records)
}

func printRecords(cmd *cobra.Command, records []types.ConversionRecord) error {
	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-30s  %-9s  %-20s  %s\n", "Source", "Status", "Converted", "Target")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range records {
		source := filepath.Base(r.SourcePath)
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		status := string(r.Status)
		target := r.TargetPath
		if r.Error != "" {
			target = r.Error
		}
		fmt.Fprintf(w, "%-30s  %-9s  %-20s  %s\n",
			source, status, r.ConvertedAt.Local().Format("2006-01-02 15:04:05"), target)
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}

func printRuns(cmd *cobra.Command, runs []types.RunSummary) error {
	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %9s  %7s  %6s\n", "Run", "Started", "Converted", "Skipped", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 86))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %9d  %7d  %6d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Converted, r.Skipped, r.Failed)
	}
	return nil
}

func init() {
	historyCmd.Flags().String("history", "", "conversion history database (default "+history.DefaultPath+")")
	historyCmd.Flags().Bool("json", false, "export the history as JSON")
	historyCmd.Flags().Bool("yaml", false, "export the history as YAML")
	historyCmd.Flags().Bool("runs", false, "list batch runs instead of files")

	rootCmd.AddCommand(historyCmd)
}
