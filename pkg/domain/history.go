package domain

import "time"

// HistoryItem は生成に成功した結果の記録です。作成後は変更されません。
// 結果のバイト列はアイテム自身が保持するため、履歴に残っている限り参照可能です。
type HistoryItem struct {
	ID        string
	Kind      ResultKind
	Tool      Tool
	Prompt    string
	Result    ImageData
	SavedPath string // パブリッシャーが書き出した保存先（ローカル or gs://）
	CreatedAt time.Time
}
