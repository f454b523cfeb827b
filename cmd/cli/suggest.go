package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <term>",
	Short: "Shows search hints for a partial term",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, lang, err := resolveLocale()
		if err != nil {
			return err
		}
		terms, err := newClient().Suggest(cmd.Context(), strings.Join(args, " "), c, lang)
		if err != nil {
			return fmt.Errorf("suggest failed: %w", err)
		}
		if jsonOutput() {
			return writeJSON(cmd.OutOrStdout(), terms)
		}
		for _, t := range terms {
			fmt.Fprintln(cmd.OutOrStdout(), t.Term)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(suggestCmd)
}
