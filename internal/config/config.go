package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultImageModel      = "gemini-3-pro-image-preview"
	DefaultVideoModel      = "veo-2.0-generate-001"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultMaxRetries      = 2
	DefaultRetryDelay      = 2 * time.Second
	DefaultPollInterval    = 10 * time.Second
	DefaultVariantInterval = 30 * time.Second // variants の並列生成に適用する流量制限の間隔
	DefaultOutputDir       = "output"
	DefaultCacheTTL        = 1 * time.Hour
	DefaultPromptSuffix    = "" // 空なら pkg/prompts 側の品質指示を使う
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	ImageModel   string
	VideoModel   string
	PromptSuffix string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		ImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		VideoModel:   envutil.GetEnv("VIDEO_GEMINI_MODEL", DefaultVideoModel),
		PromptSuffix: envutil.GetEnv("IMAGE_PROMPT_SUFFIX", DefaultPromptSuffix),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入力関連
	Prompt     string // --prompt
	Input      string // --input: 入力画像（ローカルパス / URL / gs://）
	StyleInput string // --style: スタイル転写の参照画像
	ScriptFile string // --script-file: batch の実行スクリプト（JSON）
	OutputDir  string // --output-dir

	// 生成設定
	AspectRatio string // --aspect-ratio
	ImageModel  string // --image-model
	VideoModel  string // --video-model

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	MaxRetries  int           // --max-retries
	RetryDelay  time.Duration // --retry-delay
}
