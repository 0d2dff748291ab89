package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// retouchCmd は、画像からウォーターマークや文字を除去するサブコマンドなのだ。
// プロンプトは固定指示を使うため、ユーザー入力は不要なのだ。
var retouchCmd = &cobra.Command{
	Use:   "retouch",
	Short: "画像からウォーターマークや文字を除去するのだ。",
	Long: `入力画像に含まれるウォーターマーク・ロゴ・文字・署名を取り除き、
背後の絵柄を自然に復元した画像を保存するのだ。それ以外の部分は変更しないのだよ。`,
	RunE: retouchCommand,
}

// retouchCommand は、retouch サブコマンドの実行ロジック本体なのだ。
func retouchCommand(cmd *cobra.Command, args []string) error {
	if opts.Input == "" {
		return fmt.Errorf("処理する画像（--input）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolRetouch)
}
