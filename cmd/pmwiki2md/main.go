// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pmwiki2md CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pmwiki2md CLI.
var rootCmd = &cobra.Command{
	Use:   "pmwiki2md",
	Short: "Convert PmWiki pages to Markdown",
	Long: `pmwiki2md converts a directory of PmWiki markup files into Markdown.

It rewrites emphasis, headers, nested lists, links, sub- and superscript,
size markers and preformatted text. Conversions can be recorded in a local
history database so unchanged pages are skipped on later runs.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pmwiki2md.yaml or ~/.config/pmwiki2md/pmwiki2md.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pmwiki2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pmwiki2md"))
		}
	}

	viper.SetEnvPrefix("PMWIKI2MD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS value; the runtime
	// default applies then.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
