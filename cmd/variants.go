package cmd

import (
	"fmt"

	"github.com/shouni/go-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// variantsCmd は、同じプロンプトで全アスペクト比の画像を一括生成するサブコマンドなのだ。
// 並列実行には流量制限がかかるため、全部そろうまで少し時間がかかるのだ。
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "全アスペクト比のバリエーションを一括生成するのだ。",
	Long: `同じプロンプトを使って、対応する全アスペクト比（1:1 / 3:4 / 4:3 / 16:9 / 9:16）の
画像を並列で生成し、比率ごとのファイル名で保存するのだ。`,
	RunE: variantsCommand,
}

// variantsCommand は、variants サブコマンドの実行ロジック本体なのだ。
func variantsCommand(cmd *cobra.Command, args []string) error {
	if opts.Prompt == "" {
		return fmt.Errorf("生成の指示文（--prompt）を指定してほしいのだ")
	}

	return runTool(cmd, domain.ToolVariants)
}
