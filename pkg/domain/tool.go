package domain

import "fmt"

// Tool は画像スタジオが提供する編集操作の種別です。
type Tool string

const (
	ToolCreate    Tool = "create"    // テキストからの新規生成
	ToolEdit      Tool = "edit"      // プロンプト指示による編集
	ToolRetouch   Tool = "retouch"   // ウォーターマーク除去
	ToolUpscale   Tool = "upscale"   // 高解像度化
	ToolExpand    Tool = "expand"    // アウトペインティング（キャンバス拡張）
	ToolStyle     Tool = "style"     // スタイル転写
	ToolCharacter Tool = "character" // キャラクター転写
	ToolAnimate   Tool = "animate"   // 画像から動画を生成
	ToolVariants  Tool = "variants"  // 全アスペクト比での一括生成
)

// ResultKind は生成結果のメディア種別です。
type ResultKind string

const (
	KindImage ResultKind = "image"
	KindVideo ResultKind = "video"
)

// Kind は、ツールが最終的に出力するメディア種別を返すのだ。
func (t Tool) Kind() ResultKind {
	if t == ToolAnimate {
		return KindVideo
	}
	return KindImage
}

// ParseTool は文字列をツール種別に変換するのだ。未知の名前は ValidationError になるのだよ。
func ParseTool(s string) (Tool, error) {
	switch Tool(s) {
	case ToolCreate, ToolEdit, ToolRetouch, ToolUpscale, ToolExpand,
		ToolStyle, ToolCharacter, ToolAnimate, ToolVariants:
		return Tool(s), nil
	}
	return "", &ValidationError{Reason: "未対応のツールです: " + s}
}

// NeedsPrompt は、ユーザープロンプトが必須のツールかどうかを返します。
// character はシーンの指示文がないと固定プロンプトだけが残ってしまうため必須なのだ。
func (t Tool) NeedsPrompt() bool {
	switch t {
	case ToolCreate, ToolEdit, ToolCharacter, ToolVariants:
		return true
	}
	return false
}

// NeedsImage は、入力画像が必須のツールかどうかを返します。
func (t Tool) NeedsImage() bool {
	switch t {
	case ToolEdit, ToolRetouch, ToolUpscale, ToolExpand, ToolStyle, ToolCharacter:
		return true
	}
	return false
}

// Validate は Runner を起動する前の入力チェックを行うのだ。
// 足りないものがあれば ValidationError を返して、ここで操作を止めるのだよ。
func (t Tool) Validate(prompt string, hasImage bool) error {
	if t.NeedsPrompt() && prompt == "" {
		return &ValidationError{Reason: fmt.Sprintf("ツール '%s' にはプロンプト（--prompt）が必須です", t)}
	}
	if t.NeedsImage() && !hasImage {
		return &ValidationError{Reason: fmt.Sprintf("ツール '%s' には入力画像（--input）が必須です", t)}
	}
	// animate はプロンプトか画像のどちらかがあればよい
	if t == ToolAnimate && prompt == "" && !hasImage {
		return &ValidationError{Reason: "ツール 'animate' にはプロンプトまたは入力画像のどちらかが必要です"}
	}
	return nil
}
