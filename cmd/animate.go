package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// animateCmd は、プロンプトまたは静止画から短い動画を生成するサブコマンドなのだ。
// 動画ジョブは完了まで時間がかかるため、定期的に進捗メッセージを出しながら待つのだ。
var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "プロンプトや静止画から短い動画を生成するのだ。",
	Long: `テキストプロンプト、静止画、またはその両方を基に短い動画を生成して保存するのだ。
生成ジョブの完了までポーリングで待機するため、数分かかることがあるのだよ。`,
	RunE: animateCommand,
}

// animateCommand は、animate サブコマンドの実行ロジック本体なのだ。
func animateCommand(cmd *cobra.Command, args []string) error {
	if opts.Prompt == "" && opts.Input == "" {
		return fmt.Errorf("指示文（--prompt）か元になる画像（--input）のどちらかを指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolAnimate)
}
