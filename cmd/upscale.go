package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// upscaleCmd は、画像を高解像度化するサブコマンドなのだ。
// retouch と同じく固定指示で動くため、プロンプトは不要なのだ。
var upscaleCmd = &cobra.Command{
	Use:   "upscale",
	Short: "画像を高解像度化するのだ。",
	Long: `入力画像の内容と構図を保ったまま、ディテールの強調とノイズ除去を行い、
より高解像度な画像として保存するのだ。`,
	RunE: upscaleCommand,
}

// upscaleCommand は、upscale サブコマンドの実行ロジック本体なのだ。
func upscaleCommand(cmd *cobra.Command, args []string) error {
	if opts.Input == "" {
		return fmt.Errorf("処理する画像（--input）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolUpscale)
}
