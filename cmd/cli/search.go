package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Searches the App Store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, lang, err := resolveLocale()
		if err != nil {
			return err
		}
		apps, err := newClient().Search(cmd.Context(), strings.Join(args, " "), c, lang, searchLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			return writeJSON(out, apps)
		}
		if len(apps) == 0 {
			fmt.Fprintln(out, "検索結果がありません")
			return nil
		}

		w := newTable(out)
		fmt.Fprintln(w, "ID\tTITLE\tDEVELOPER\tSCORE\tREVIEWS")
		for _, app := range apps {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\n", app.ID, truncate(app.Title, 40), truncate(app.Developer, 30), app.Score, app.Reviews)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d件のアプリが見つかりました\n", len(apps))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
