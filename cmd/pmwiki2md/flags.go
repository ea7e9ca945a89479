// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmwiki2md/internal/history"
	"github.com/pdiddy/pmwiki2md/pkg/types"
)

// Conversion settings live under the "convert" key of the config file and
// the PMWIKI2MD_CONVERT_ environment prefix.
const configSection = "convert"

func configKey(flag string) string {
	return configSection + "." + flag
}

// bindFlags binds the local flags of cmd to their config keys so that
// explicit flags override environment and config file values.
func bindFlags(cmd *cobra.Command, _ []string) error {
	var bindErr error
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" || bindErr != nil {
			return
		}
		bindErr = viper.BindPFlag(configKey(f.Name), f)
	})
	return bindErr
}

// addEncodingFlags registers the flags shared by every command that reads
// PmWiki files.
func addEncodingFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("ignore-codec-read-errors", "i", false, "drop undecodable source bytes instead of failing the file")
	cmd.Flags().String("source-encoding", "", "IANA encoding of source files (default UTF-8)")
	cmd.Flags().Bool("tables", false, "convert PmWiki simple tables")
}

// addConversionFlags registers the flags of commands that convert a source
// directory into a target directory.
func addConversionFlags(cmd *cobra.Command) {
	addEncodingFlags(cmd)
	cmd.Flags().String("source-suffix", types.DefaultSourceSuffix, "only convert source files with this suffix")
	cmd.Flags().String("target-suffix", types.DefaultTargetSuffix, "suffix of the written Markdown files")
	cmd.Flags().String("target-encoding", "", "IANA encoding of target files (default UTF-8)")
	cmd.Flags().Int("workers", 0, "files converted in parallel (0 = number of CPUs)")
	cmd.Flags().String("history", "", "conversion history database (empty disables history)")
	cmd.Flags().Bool("skip-unchanged", false, "skip sources unchanged since their last recorded conversion")
}

// conversionConfig assembles the run configuration from flags, environment
// and config file.
func conversionConfig(sourceDir, targetDir string) types.ConversionConfig {
	return types.ConversionConfig{
		PairingConfig: types.PairingConfig{
			SourceDir:    sourceDir,
			TargetDir:    targetDir,
			SourceSuffix: viper.GetString(configKey("source-suffix")),
			TargetSuffix: viper.GetString(configKey("target-suffix")),
		},
		EncodingConfig: encodingConfig(),
		Workers:        viper.GetInt(configKey("workers")),
		Tables:         viper.GetBool(configKey("tables")),
		HistoryPath:    historyPath(),
		SkipUnchanged:  viper.GetBool(configKey("skip-unchanged")),
		ReportPath:     viper.GetString(configKey("report")),
	}
}

func encodingConfig() types.EncodingConfig {
	return types.EncodingConfig{
		Source:             viper.GetString(configKey("source-encoding")),
		Target:             viper.GetString(configKey("target-encoding")),
		IgnoreDecodeErrors: viper.GetBool(configKey("ignore-codec-read-errors")),
	}
}

// historyPath returns the configured history database. Skipping unchanged
// files needs history, so it falls back to the default path then.
func historyPath() string {
	path := viper.GetString(configKey("history"))
	if path == "" && viper.GetBool(configKey("skip-unchanged")) {
		return history.DefaultPath
	}
	return path
}
