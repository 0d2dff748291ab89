package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// expandCmd は、画像を指定アスペクト比へ描き足して拡張するサブコマンドなのだ。
// 元画像を透明キャンバスの中央に置き、余白部分の続きをモデルに描かせるのだ。
var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "画像を指定アスペクト比へ拡張（アウトペイント）するのだ。",
	Long: `入力画像を目標アスペクト比のキャンバス中央に配置し、
余った領域を元のシーンの続きとして自然に描き足した画像を保存するのだ。
--prompt で描き足し方のヒントを追加できるのだよ。`,
	RunE: expandCommand,
}

// expandCommand は、expand サブコマンドの実行ロジック本体なのだ。
func expandCommand(cmd *cobra.Command, args []string) error {
	if opts.Input == "" {
		return fmt.Errorf("拡張する画像（--input）を指定してほしいのだ")
	}

	// --aspect-ratio がユーザーによって指定されなかった場合、
	// expand コマンド固有のデフォルト値を設定する
	if !cmd.Flags().Changed("aspect-ratio") {
		opts.AspectRatio = "16:9"
	}

	return runTool(cmd, domain.ToolExpand)
}
