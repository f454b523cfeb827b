package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/infra/apiclient"
)

const (
	requestTimeout  = 30 * time.Second
	analysisTimeout = 90 * time.Second
	searchLimit     = 25
)

func searchCmd(client *apiclient.Client, session *collector.Session, term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		country, lang := session.Locale()
		apps, err := client.Search(ctx, term, country, lang, searchLimit)
		return searchDoneMsg{term: term, apps: apps, err: err}
	}
}

func suggestCmd(client *apiclient.Client, session *collector.Session, term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		country, lang := session.Locale()
		terms, err := client.Suggest(ctx, term, country, lang)
		return suggestDoneMsg{terms: terms, err: err}
	}
}

func fetchCmd(session *collector.Session, more bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout*2)
		defer cancel()
		var (
			round collector.Round
			err   error
		)
		if more {
			round, err = session.LoadMore(ctx)
		} else {
			round, err = session.Start(ctx)
		}
		return roundDoneMsg{round: round, more: more, err: err}
	}
}

func analyzeCmd(session *collector.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()
		res, err := session.Analyze(ctx)
		return analysisDoneMsg{result: res, err: err}
	}
}

func historyCmd(client *apiclient.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		recs, err := client.Analyses(ctx, 1, 10)
		return historyLoadedMsg{records: recs, err: err}
	}
}
