package domain

import "fmt"

// BatchStep は一括実行スクリプトの1ステップなのだ。
// FromStep は1始まりのステップ番号で、先行ステップの生成結果を入力画像として参照するのだ。
type BatchStep struct {
	Tool        string `json:"tool"`
	Prompt      string `json:"prompt,omitempty"`
	Input       string `json:"input,omitempty"`
	Style       string `json:"style,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	FromStep    int    `json:"from_step,omitempty"`
}

// BatchScript は順に実行されるステップの並びです。
type BatchScript struct {
	Steps []BatchStep `json:"steps"`
}

// Validate はスクリプト全体を実行前に検証するのだ。
// ステップ間の参照もここで静的に確認するため、途中まで実行してから
// 参照エラーで止まることはないのだよ。
func (s *BatchScript) Validate() error {
	if len(s.Steps) == 0 {
		return &ValidationError{Reason: "スクリプトにステップがありません"}
	}

	for i, step := range s.Steps {
		n := i + 1

		tool, err := ParseTool(step.Tool)
		if err != nil {
			return &ValidationError{Reason: fmt.Sprintf("ステップ %d: %v", n, err)}
		}
		if tool == ToolVariants {
			return &ValidationError{Reason: fmt.Sprintf("ステップ %d: variants は複数の結果を生むため、スクリプトのステップには使えません", n)}
		}

		if step.FromStep != 0 {
			if step.FromStep < 1 || step.FromStep > i {
				return &ValidationError{Reason: fmt.Sprintf("ステップ %d: from_step は先行するステップ番号（1〜%d）を指定してください", n, i)}
			}
			prev, _ := ParseTool(s.Steps[step.FromStep-1].Tool)
			if prev.Kind() == KindVideo {
				return &ValidationError{Reason: fmt.Sprintf("ステップ %d: ステップ %d の結果は動画なので、画像入力としては参照できません", n, step.FromStep)}
			}
		}

		hasImage := step.Input != "" || step.FromStep != 0
		if err := tool.Validate(step.Prompt, hasImage); err != nil {
			return &ValidationError{Reason: fmt.Sprintf("ステップ %d: %v", n, err)}
		}

		if tool == ToolStyle && step.Style == "" {
			return &ValidationError{Reason: fmt.Sprintf("ステップ %d: style にはスタイル参照画像（style）が必要です", n)}
		}
		if tool == ToolExpand && step.AspectRatio == "" {
			return &ValidationError{Reason: fmt.Sprintf("ステップ %d: expand には拡張先の比率（aspect_ratio）が必要です", n)}
		}
		if step.AspectRatio != "" {
			if _, err := ParseAspectRatio(step.AspectRatio); err != nil {
				return &ValidationError{Reason: fmt.Sprintf("ステップ %d: %v", n, err)}
			}
		}
	}
	return nil
}
