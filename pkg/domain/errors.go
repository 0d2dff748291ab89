package domain

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrMissingAPIKey は APIキー未設定を表す設定エラーです。
// リモート呼び出しを行う前に検出され、すべての操作をブロックします。
var ErrMissingAPIKey = errors.New("環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")

// ErrQuotaExceeded は、レート制限のリトライを使い切ったことを表します。
var ErrQuotaExceeded = errors.New("APIのクォータを使い切りました。しばらく待ってから再実行してほしいのだ")

// ErrNoResult は、リモートサービスが画像/動画を返さなかったことを表します。
var ErrNoResult = errors.New("生成結果にメディアデータが含まれていませんでした")

// ValidationError は、ツール起動前の入力チェックで検出された不足を表します。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// DecodeError は、入力ファイルやキャンバスのデコード/エンコード失敗を表します。
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsRateLimited は、エラーがレート制限由来かどうかをパターンで判定するのだ。
// 構造化された retry-after は期待できないため、ステータスコードと
// RESOURCE_EXHAUSTED マーカーの両方を見るのだよ。
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
