package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <app-id>...",
	Short: "Collects negative reviews and summarizes common problems",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context(), cmd.ErrOrStderr(), args)
		if err != nil {
			return err
		}
		if err := collect(cmd.Context(), cmd.ErrOrStderr(), session, maxPages); err != nil {
			return err
		}
		reviews := session.Reviews()
		if len(reviews) == 0 {
			return collector.ErrNothingToAnalyze
		}

		res, err := newClient().Analyze(cmd.Context(), reviews)
		if err != nil {
			return fmt.Errorf("analyze failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput() {
			return writeJSON(out, res)
		}
		fmt.Fprintf(out, "%d件のレビューを分析しました\n\n", len(reviews))
		writeResult(out, res.Result)
		if res.ReportURL != "" {
			fmt.Fprintf(out, "\nレポート: %s\n", res.ReportURL)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	addCollectFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
