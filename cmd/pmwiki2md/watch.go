// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmwiki2md/internal/convert"
	"github.com/pdiddy/pmwiki2md/internal/rule"
	"github.com/pdiddy/pmwiki2md/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch SOURCE_DIR TARGET_DIR",
	Short: "Convert a directory and keep converting files as they change",
	Long: `Watch converts SOURCE_DIR like convert does, then waits for PmWiki files
to be created or modified and converts them again. Changes are batched
until the directory has been quiet for the debounce interval. Stop with
Ctrl-C.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: bindFlags,
	RunE:    runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(args[0], args[1])

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, closeHistory, err := conversionOptions(cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	debounce, level := watchSettings()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	w := watch.New(convert.New(rule.Options{Tables: cfg.Tables}), cfg.PairingConfig, opts, cmd.OutOrStdout(), logger)
	w.SetDebounce(debounce)
	return w.Run(ctx)
}

// watchSettings returns the debounce interval and log level from flags,
// environment and config file.
func watchSettings() (time.Duration, slog.Level) {
	level := slog.LevelInfo
	if viper.GetBool(configKey("verbose")) {
		level = slog.LevelDebug
	}
	return viper.GetDuration(configKey("debounce")), level
}

func init() {
	addConversionFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before converting changed files")
	watchCmd.Flags().BoolP("verbose", "v", false, "log every file system event")

	rootCmd.AddCommand(watchCmd)
}
