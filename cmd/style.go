package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// styleCmd は、参照画像のアートスタイルを入力画像へ転写するサブコマンドなのだ。
var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "参照画像のスタイルで入力画像を描き直すのだ。",
	Long: `1枚目（--input）の内容を、2枚目（--style）のアートスタイルで全面的に描き直した画像を保存するのだ。
構図と被写体は維持されるのだよ。`,
	RunE: styleCommand,
}

// styleCommand は、style サブコマンドの実行ロジック本体なのだ。
func styleCommand(cmd *cobra.Command, args []string) error {
	if opts.Input == "" {
		return fmt.Errorf("内容となる画像（--input）を指定してほしいのだ")
	}
	if opts.StyleInput == "" {
		return fmt.Errorf("スタイルの参照画像（--style）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolStyle)
}
