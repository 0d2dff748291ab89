package builder

import (
	"github.com/shouni/go-image-studio/internal/config"

	"github.com/shouni/go-image-studio/pkg/generator"
	"github.com/shouni/go-image-studio/pkg/history"
	"github.com/shouni/go-image-studio/pkg/prompts"
	"github.com/shouni/go-image-studio/pkg/publisher"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です（プロンプト、入力画像、比率など）。
	Reader     remoteio.InputReader    // Readerは、入力画像の読み込みに使用する入力元です。
	Assets     *generator.AssetLoader  // Assetsは、ローカル/URL/gs:// の入力画像を取得するローダーです。
	Client     generator.Client        // Clientは、画像・動画生成に使う生成AIクライアントです。
	Prompts    *prompts.Builder        // Promptsは、ツールごとの指示文を組み立てるビルダーです。
	History    *history.Store          // Historyは、セッション内の生成履歴を保持するストアです。
	Publisher  *publisher.Publisher    // Publisherは、成果物をローカル/GCSへ保存する出力係です。
	httpClient httpkit.HTTPClient // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.HTTPClient,
	client generator.Client,
	reader remoteio.InputReader,
	assets *generator.AssetLoader,
	pub *publisher.Publisher,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Reader:     reader,
		Assets:     assets,
		Client:     client,
		Prompts:    prompts.NewBuilder(cfg.PromptSuffix),
		History:    history.NewStore(),
		Publisher:  pub,
		httpClient: httpClient,
	}
}
