package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers the review-miner endpoints the CLI uses. App "1" has two
// pages, app "2" has one.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "JP", r.URL.Query().Get("country"))
		if r.URL.Query().Get("term") == "none" {
			reply(w, map[string]any{"apps": []any{}})
			return
		}
		reply(w, map[string]any{"apps": []map[string]any{{"id": "1", "title": "メモ帳", "developer": "Dev", "score": 4.2, "reviews": 10}}})
	})
	mux.HandleFunc("/api/app", func(w http.ResponseWriter, r *http.Request) {
		titles := map[string]string{"1": "メモ帳", "2": "ノート"}
		title, ok := titles[r.URL.Query().Get("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			reply(w, map[string]string{"error": "アプリが見つかりません"})
			return
		}
		reply(w, map[string]any{"app": map[string]any{"id": r.URL.Query().Get("id"), "title": title}})
	})
	mux.HandleFunc("/api/suggest", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, map[string]any{"suggestions": []map[string]string{{"term": "memo"}, {"term": "memo pad"}}})
	})
	mux.HandleFunc("/api/reviews", func(w http.ResponseWriter, r *http.Request) {
		id, page := r.URL.Query().Get("id"), r.URL.Query().Get("page")
		switch {
		case id == "1" && page == "1":
			reply(w, map[string]any{"reviews": []map[string]any{{"id": "r1", "title": "落ちる", "score": 1}}, "page": 1, "hasMore": true})
		case id == "1" && page == "2":
			reply(w, map[string]any{"reviews": []map[string]any{{"id": "r2", "title": "遅い", "score": 2}}, "page": 2, "hasMore": false})
		case id == "2" && page == "1":
			reply(w, map[string]any{"reviews": []map[string]any{}, "page": 1, "message": "これ以上のレビューはありません"})
		default:
			w.WriteHeader(http.StatusBadRequest)
			reply(w, map[string]string{"error": "レビューの取得中にエラーが発生しました"})
		}
	})
	mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Reviews []struct {
				AppTitle string `json:"appTitle"`
			} `json:"reviews"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for _, rv := range body.Reviews {
			assert.Equal(t, "メモ帳", rv.AppTitle)
		}
		reply(w, map[string]any{
			"commonIssues": []string{"クラッシュ"}, "suggestions": []string{"安定性の改善"},
			"degraded": len(body.Reviews) == 1, "id": "abc", "reportUrl": "http://minio/r.json",
		})
	})
	mux.HandleFunc("/api/analyses", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, []map[string]any{{"id": "abc", "review_count": 2, "app_ids": []string{"1"}, "model": "gpt-4o", "created_at": "2024-01-02T03:04:05Z"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	base := []string{"--api-url", srv.URL, "--api-key", "secret", "--country", "jp", "--lang", "ja", "--json=false"}
	rootCmd.SetArgs(append(args, base...))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSearchCommand(t *testing.T) {
	srv := fakeAPI(t)

	out, _, err := run(t, srv, "search", "memo")
	require.NoError(t, err)
	assert.Contains(t, out, "メモ帳")
	assert.Contains(t, out, "1件のアプリが見つかりました")

	out, _, err = run(t, srv, "search", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "検索結果がありません")
}

func TestSuggestCommand(t *testing.T) {
	out, _, err := run(t, fakeAPI(t), "suggest", "mem")
	require.NoError(t, err)
	assert.Equal(t, "memo\nmemo pad\n", out)
}

func TestReviewsCommandFollowsPages(t *testing.T) {
	srv := fakeAPI(t)

	out, _, err := run(t, srv, "reviews", "1", "--pages", "1", "--partial=false")
	require.NoError(t, err)
	assert.Contains(t, out, "メモ帳")
	assert.Contains(t, out, "落ちる")
	assert.NotContains(t, out, "遅い")
	assert.Contains(t, out, "1件の低評価レビュー (1ページ, 続き: true)")

	out, _, err = run(t, srv, "reviews", "1", "--pages", "5", "--partial=false")
	require.NoError(t, err)
	assert.Contains(t, out, "遅い")
	assert.Contains(t, out, "2件の低評価レビュー (2ページ, 続き: false)")
}

func TestReviewsCommandNotices(t *testing.T) {
	_, errOut, err := run(t, fakeAPI(t), "reviews", "2", "--pages", "1", "--partial=false")
	require.NoError(t, err)
	assert.Contains(t, errOut, "ノート: これ以上のレビューはありません")
}

func TestReviewsCommandFailure(t *testing.T) {
	srv := fakeAPI(t)

	_, errOut, err := run(t, srv, "reviews", "9", "--pages", "1", "--partial=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "レビューの取得中にエラーが発生しました")
	assert.Contains(t, errOut, "warning: 9: アプリが見つかりません")

	out, errOut, err := run(t, srv, "reviews", "1", "9", "--pages", "1", "--partial")
	require.NoError(t, err)
	assert.Contains(t, out, "落ちる")
	assert.Contains(t, errOut, "warning: 9: レビューの取得中にエラーが発生しました")
}

func TestAnalyzeCommand(t *testing.T) {
	out, _, err := run(t, fakeAPI(t), "analyze", "1", "--pages", "2", "--partial=false")
	require.NoError(t, err)
	assert.Contains(t, out, "2件のレビューを分析しました")
	assert.Contains(t, out, "1. クラッシュ")
	assert.Contains(t, out, "1. 安定性の改善")
	assert.Contains(t, out, "レポート: http://minio/r.json")
	assert.NotContains(t, out, "簡易分析")
}

func TestAnalyzeCommandNothingToAnalyze(t *testing.T) {
	_, _, err := run(t, fakeAPI(t), "analyze", "2", "--pages", "1", "--partial=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分析するレビューがありません")
}

func TestHistoryCommandJSON(t *testing.T) {
	srv := fakeAPI(t)
	var stdout bytes.Buffer
	rootCmd.SetArgs([]string{"history", "--api-url", srv.URL, "--json"})
	rootCmd.SetOut(&stdout)
	require.NoError(t, rootCmd.Execute())

	var recs []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "abc", recs[0]["id"])
}

func TestHistoryCommandTable(t *testing.T) {
	out, _, err := run(t, fakeAPI(t), "history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Contains(t, out, "gpt-4o")
}

func TestInvalidCountry(t *testing.T) {
	srv := fakeAPI(t)
	rootCmd.SetArgs([]string{"search", "memo", "--api-url", srv.URL, "--country", "zz"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "無効な国コード: ZZ")
}

func TestEnvSettings(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(slow.Close)
	srv := fakeAPI(t)

	// let env win over values left by earlier runs
	for _, name := range []string{"json", "timeout"} {
		rootCmd.PersistentFlags().Lookup(name).Changed = false
	}

	t.Setenv("REVIEWMINER_JSON", "true")
	var stdout bytes.Buffer
	rootCmd.SetArgs([]string{"history", "--api-url", srv.URL})
	rootCmd.SetOut(&stdout)
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "["))

	t.Setenv("REVIEWMINER_TIMEOUT", "20ms")
	rootCmd.SetArgs([]string{"history", "--api-url", slow.URL})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client.Timeout")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a b", truncate("a\n b", 5))
}
