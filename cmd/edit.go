package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// editCmd は、既存画像をプロンプトの指示どおりに書き換えるサブコマンドなのだ。
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "既存の画像をプロンプトで編集するのだ。",
	Long: `入力画像とテキスト指示を基に、指示された変更だけを適用した画像を生成して保存するのだ。
構図や被写体はなるべく保ったまま編集するのだよ。`,
	RunE: editCommand,
}

// editCommand は、edit サブコマンドの実行ロジック本体なのだ。
func editCommand(cmd *cobra.Command, args []string) error {
	if opts.Input == "" {
		return fmt.Errorf("編集する画像（--input）を指定してほしいのだ")
	}
	if opts.Prompt == "" {
		return fmt.Errorf("編集の指示文（--prompt）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolEdit)
}
