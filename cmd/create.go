package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// createCmd は、テキストプロンプトから新しい画像を生成するサブコマンドなのだ。
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "プロンプトから新しい画像を生成するのだ。",
	Long: `テキストプロンプトを基に、新しい画像を1枚生成して保存するのだ。
--aspect-ratio で出力の比率（1:1 / 3:4 / 4:3 / 16:9 / 9:16）を指定できるのだよ。`,
	RunE: createCommand,
}

// createCommand は、create サブコマンドの実行ロジック本体なのだ。
func createCommand(cmd *cobra.Command, args []string) error {
	if opts.Prompt == "" {
		return fmt.Errorf("生成の指示文（--prompt）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolCreate)
}
