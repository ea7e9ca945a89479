// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmwiki2md/internal/rule"
)

var rulesCmd = &cobra.Command{
	Use:     "rules",
	Short:   "List the conversion rules in the order they are applied",
	Args:    cobra.NoArgs,
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := rule.Catalog(rule.Options{Tables: viper.GetBool(configKey("tables"))})
		w := cmd.OutOrStdout()
		for i, r := range rules {
			desc := ""
			if s, ok := r.(fmt.Stringer); ok {
				desc = s.String()
			}
			fmt.Fprintf(w, "%2d  %-26s  %s\n", i+1, r.Name(), desc)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().Bool("tables", false, "include the table rule")

	rootCmd.AddCommand(rulesCmd)
}
