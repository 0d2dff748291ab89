package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// characterCmd は、入力画像のキャラクターを別のシーンに登場させるサブコマンドなのだ。
var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "画像のキャラクターを指定シーンへ転写するのだ。",
	Long: `入力画像に写っているキャラクターを、外見・服装・特徴をそのまま保ったまま、
--prompt で指定したシーンに登場させた画像を生成して保存するのだ。`,
	RunE: characterCommand,
}

// characterCommand は、character サブコマンドの実行ロジック本体なのだ。
func characterCommand(cmd *cobra.Command, args []string) error {
	if opts.Input == "" {
		return fmt.Errorf("キャラクターの画像（--input）を指定してほしいのだ")
	}
	if opts.Prompt == "" {
		return fmt.Errorf("登場させるシーンの指示文（--prompt）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolCharacter)
}
