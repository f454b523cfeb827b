package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

// truncate shortens s to n runes and flattens newlines for table cells.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func writeResult(w io.Writer, res analysis.Result) {
	if res.Degraded {
		fmt.Fprintln(w, "※ AI分析が利用できないため、簡易分析を表示しています。")
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "よくある問題点:")
	for i, issue := range res.CommonIssues {
		fmt.Fprintf(w, "  %d. %s\n", i+1, issue)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "改善提案:")
	for i, s := range res.Suggestions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
}
