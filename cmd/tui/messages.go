package main

import (
	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

type searchDoneMsg struct {
	term string
	apps []catalog.App
	err  error
}

type suggestDoneMsg struct {
	terms []catalog.Suggestion
	err   error
}

// roundDoneMsg reports a finished FetchPage call.
type roundDoneMsg struct {
	round collector.Round
	more  bool
	err   error
}

type analysisDoneMsg struct {
	result analysis.Result
	err    error
}

type historyLoadedMsg struct {
	records []*analysis.Record
	err     error
}
