package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyPage int
	historySize int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lists stored analyses, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		recs, err := newClient().Analyses(cmd.Context(), historyPage, historySize)
		if err != nil {
			return fmt.Errorf("failed to retrieve history: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			return writeJSON(out, recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(out, "分析履歴はありません")
			return nil
		}

		w := newTable(out)
		fmt.Fprintln(w, "ID\tCREATED\tREVIEWS\tAPPS\tMODEL\tREPORT")
		for _, r := range recs {
			model := r.Model
			if r.Result.Degraded {
				model += " (fallback)"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				r.ID, r.CreatedAt.Format(time.RFC822), r.ReviewCount, strings.Join(r.AppIDs, ","), model, r.ReportURL)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	historyCmd.Flags().IntVar(&historyPage, "page", 1, "Page number")
	historyCmd.Flags().IntVar(&historySize, "size", 20, "Page size")
	rootCmd.AddCommand(historyCmd)
}
