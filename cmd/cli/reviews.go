package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

var (
	maxPages    int
	partialMode bool
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews <app-id>...",
	Short: "Collects negative reviews for one or more apps",
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
		out := cmd.OutOrStdout()
		if jsonOutput() {
			return writeJSON(out, reviews)
		}

		w := newTable(out)
		fmt.Fprintln(w, "APP\tSCORE\tTITLE\tTEXT\tVERSION\tDATE")
		for _, r := range reviews {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
				truncate(r.AppTitle, 20), r.Score, truncate(r.Title, 30), truncate(r.Text, 60), r.Version, r.Updated.Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		page, more := session.Cursor()
		fmt.Fprintf(out, "\n%d件の低評価レビュー (%dページ, 続き: %t)\n", len(reviews), page, more)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	addCollectFlags(reviewsCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func addCollectFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&maxPages, "pages", "p", 1, "Maximum number of pages to fetch per app")
	cmd.Flags().BoolVar(&partialMode, "partial", false, "Keep reviews from apps that succeeded when others fail")
}

// newSession selects the given store ids, looking each listing up so reviews
// and the analysis prompt carry real titles. An app that cannot be looked up
// is still selected, under its id.
func newSession(ctx context.Context, stderr io.Writer, ids []string) (*collector.Session, error) {
	c, lang, err := resolveLocale()
	if err != nil {
		return nil, err
	}
	policy := collector.AllOrNothing
	if partialMode {
		policy = collector.PartialCommit
	}
	client := newClient()
	session := collector.NewSession(client, client, collector.WithLocale(c, lang), collector.WithPolicy(policy))
	for _, id := range ids {
		app, err := client.App(ctx, id, c, lang)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %s: %v\n", id, err)
			app = catalog.App{ID: id, Title: id}
		}
		session.Toggle(app)
	}
	return session, nil
}

// collect fetches up to pages rounds, stopping early once every app is exhausted.
func collect(ctx context.Context, stderr io.Writer, session *collector.Session, pages int) error {
	if pages < 1 {
		pages = 1
	}
	round, err := session.Start(ctx)
	for i := 1; ; i++ {
		for _, n := range session.TakeNotices() {
			fmt.Fprintln(stderr, n)
		}
		if err != nil {
			if !round.Committed {
				return err
			}
			fmt.Fprintln(stderr, "warning:", err)
		}
		if _, more := session.Cursor(); !more || i >= pages {
			return nil
		}
		round, err = session.LoadMore(ctx)
	}
}
