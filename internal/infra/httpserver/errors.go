package httpserver

import (
	"fmt"
	"net/http"
)

const (
	msgMissingSearchTerm = "検索キーワードが必要です"
	msgMissingTerm       = "キーワードが必要です"
	msgMissingAppID      = "アプリIDが必要です"
	msgInvalidAppID      = "アプリIDが無効です"
	msgAppNotFound       = "アプリが見つかりません"
	msgLookupFailed      = "アプリ情報の取得中にエラーが発生しました"
	msgNoReviews         = "分析するレビューが必要です"
	msgBadBody           = "リクエストボディが無効です"
	msgHistoryDisabled   = "分析履歴は無効です"
	msgSearchFailed      = "アプリの検索中にエラーが発生しました"
	msgReviewsFailed     = "レビューの取得中にエラーが発生しました"
	msgSuggestFailed     = "サジェスト取得中にエラーが発生しました"
	msgAnalyzeFailed     = "レビューの分析中にエラーが発生しました"
	msgInternal          = "エラーが発生しました"
)

// httpError carries the status and the user-facing message for a failure.
type httpError struct {
	status int
	msg    string
	err    error
}

func (e *httpError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *httpError) Unwrap() error { return e.err }

func badRequest(msg string) *httpError {
	return &httpError{status: http.StatusBadRequest, msg: msg}
}

func invalidCountry(code string) *httpError {
	return badRequest(fmt.Sprintf("無効な国コード: %s", code))
}

// serverError surfaces the downstream message, or def when there is none.
func serverError(err error, def string) *httpError {
	msg := def
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &httpError{status: http.StatusInternalServerError, msg: msg, err: err}
}
