package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-image-studio/internal/config"
	"github.com/shouni/go-image-studio/internal/runner"
	"github.com/shouni/go-image-studio/pkg/generator"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// InitializeAIClient は Gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string, httpClient httpkit.HTTPClient) (generator.Client, error) {
	aiClient, err := generator.NewGeminiClient(ctx, apiKey, httpClient)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeAssetLoader は TTL キャッシュつきの AssetLoader を初期化します。
func InitializeAssetLoader(reader remoteio.InputReader, httpClient httpkit.HTTPClient) (*generator.AssetLoader, error) {
	assetCache := cache.New(config.DefaultCacheTTL, config.DefaultCacheTTL)
	loader, err := generator.NewAssetLoader(reader, httpClient, assetCache, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("AssetLoaderの初期化に失敗したのだ: %w", err)
	}
	return loader, nil
}

// BuildTaskRunner はレート制限時のリトライを担当する Runner を構築します。
// 進捗メッセージは Runner 自身が slog へ流すため、コールバックは不要なのだ。
func BuildTaskRunner(appCtx *AppContext) *runner.TaskRunner {
	opts := appCtx.Options
	return runner.NewTaskRunner(opts.MaxRetries, opts.RetryDelay, nil)
}

// BuildVideoRunner は動画ジョブの完了待ちを担当する Runner を構築します。
func BuildVideoRunner(appCtx *AppContext) *runner.VideoRunner {
	return runner.NewVideoRunner(appCtx.Client, config.DefaultPollInterval, nil)
}

// BuildVariantsRunner は全比率一括生成を担当する Runner を構築します。
func BuildVariantsRunner(appCtx *AppContext) *runner.VariantsRunner {
	opts := appCtx.Options
	return runner.NewVariantsRunner(
		appCtx.Client,
		opts.ImageModel,
		config.DefaultVariantInterval,
		opts.MaxRetries,
		opts.RetryDelay,
	)
}
