package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-image-studio/internal/pipeline"

	"github.com/spf13/cobra"
)

// batchCmd は、JSONスクリプトに並べた複数ツールを1回の起動で順に実行するサブコマンドなのだ。
// ステップの結果はセッション履歴に積まれ、後続ステップが from_step で入力として参照できるのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "スクリプトに従って複数のツールを順に実行するのだ。",
	Long: `JSONスクリプト（steps の配列）を読み込み、記述された順にツールを実行するのだ。
各ステップの生成結果はセッション履歴に記録され、後続のステップは from_step で
先行ステップの結果をそのまま入力画像として使えるのだよ。
例: create → edit → expand → animate のような編集チェーンを1コマンドで回せるのだ。`,
	RunE: batchCommand,
}

// batchCommand は、batch サブコマンドの実行ロジック本体なのだ。
func batchCommand(cmd *cobra.Command, args []string) error {
	if opts.ScriptFile == "" {
		return fmt.Errorf("実行するスクリプト（--script-file）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("一括実行モードを起動するのだ！",
		"script_file", cfg.Options.ScriptFile,
		"output_dir", cfg.Options.OutputDir)

	return pipeline.ExecuteBatch(cmd.Context(), cfg)
}
