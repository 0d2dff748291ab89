package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-image-studio/internal/config"
	"github.com/shouni/go-image-studio/internal/pipeline"
	"github.com/shouni/go-image-studio/pkg/domain"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有される実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Prompt, "prompt", "p", "", "生成・編集の指示文なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Input, "input", "f", "", "入力画像（ローカルパス / URL / gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.StyleInput, "style", "s", "", "スタイル転写の参照画像（ローカルパス / URL / gs://...）なのだ。")
	batchCmd.Flags().StringVar(&opts.ScriptFile, "script-file", "", "一括実行するJSONスクリプトのパス（ローカル or gs://...）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.AspectRatio, "aspect-ratio", "a", "", "アスペクト比（1:1 / 3:4 / 4:3 / 16:9 / 9:16）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "使用する画像生成モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.VideoModel, "video-model", "", "使用する動画生成モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- レート制限リトライの設定 ---
	rootCmd.PersistentFlags().IntVar(&opts.MaxRetries, "max-retries", config.DefaultMaxRetries, "レート制限時の最大リトライ回数なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.RetryDelay, "retry-delay", config.DefaultRetryDelay, "初回リトライまでの待ち時間（以降は倍々）なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// loadConfig は環境変数の基本設定にコマンドライン引数を重ねた Config を返すのだ。
// モデル名はフラグ未指定なら環境変数側の値を使うのだよ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if opts.ImageModel == "" {
		opts.ImageModel = cfg.ImageModel
	}
	if opts.VideoModel == "" {
		opts.VideoModel = cfg.VideoModel
	}
	cfg.Options = opts
	return cfg
}

// runTool は、設定のロードとフラグの反映を行い、指定ツールのパイプラインをキックする共通処理なのだ。
func runTool(cmd *cobra.Command, tool domain.Tool) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("処理を開始するのだ！",
		"tool", tool,
		"input", cfg.Options.Input,
		"output_dir", cfg.Options.OutputDir)

	return pipeline.Execute(ctx, cfg, tool)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-studio-go",
		addAppFlags,
		preRunAppE,
		createCmd,
		editCmd,
		retouchCmd,
		upscaleCmd,
		expandCmd,
		styleCmd,
		characterCmd,
		animateCmd,
		variantsCmd,
		batchCmd,
	)
}
