package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-image-studio/internal/builder"
	"github.com/shouni/go-image-studio/internal/config"
	"github.com/shouni/go-image-studio/pkg/compositor"
	"github.com/shouni/go-image-studio/pkg/domain"
	"github.com/shouni/go-image-studio/pkg/generator"
	"github.com/shouni/go-image-studio/pkg/publisher"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// stepParams は1回のツール実行に使う入力一式なのだ。
// 単発コマンドはフラグから、batch はスクリプトのステップから組み立てるのだ。
type stepParams struct {
	prompt    string
	input     string            // 入力画像の取得元（ローカルパス / URL / gs://）
	style     string            // スタイル転写の参照画像の取得元
	aspect    string            // アスペクト比のトークン（空なら指定なし）
	preloaded *domain.ImageData // 履歴から解決済みの入力画像（input より優先）
}

// Execute は指定されたツールを検証から保存まで一気通貫で実行するのだ。
func Execute(ctx context.Context, cfg *config.Config, tool domain.Tool) error {
	opts := cfg.Options

	if err := tool.Validate(opts.Prompt, opts.Input != ""); err != nil {
		return err
	}

	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	params := stepParams{
		prompt: opts.Prompt,
		input:  opts.Input,
		style:  opts.StyleInput,
		aspect: opts.AspectRatio,
	}

	switch tool {
	case domain.ToolAnimate:
		_, err := runVideo(ctx, appCtx, tool, params)
		return err
	case domain.ToolVariants:
		return runVariantsStep(ctx, appCtx, tool)
	default:
		_, err := runImage(ctx, appCtx, tool, params)
		return err
	}
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)
	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.InputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.OutputWriter()
	if err != nil {
		return nil, err
	}

	assets, err := builder.InitializeAssetLoader(reader, httpClient)
	if err != nil {
		return nil, err
	}

	pub := publisher.NewPublisher(writer, cfg.Options.OutputDir)
	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, assets, pub)
	return &appCtx, nil
}

// runImage は画像系ツール（create / edit / retouch / upscale / expand / style / character）を実行するのだ。
func runImage(ctx context.Context, appCtx *builder.AppContext, tool domain.Tool, p stepParams) (domain.HistoryItem, error) {
	opts := appCtx.Options

	images, aspect, err := prepareImageInputs(ctx, appCtx, tool, p)
	if err != nil {
		return domain.HistoryItem{}, err
	}

	prompt := appCtx.Prompts.Build(tool, p.prompt)
	slog.Info("画像生成を開始するのだ...", "tool", tool, "model", opts.ImageModel)

	taskRunner := builder.BuildTaskRunner(appCtx)
	var result *domain.ImageData
	err = taskRunner.Run(ctx, func(ctx context.Context) error {
		resp, err := appCtx.Client.GenerateImage(ctx, generator.ImageRequest{
			Model:       opts.ImageModel,
			Prompt:      prompt,
			Images:      images,
			AspectRatio: aspect,
		})
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return domain.HistoryItem{}, err
	}

	return publishResult(ctx, appCtx, tool, p.prompt, *result)
}

// prepareImageInputs は入力画像の読み込みと、必要ならキャンバス拡張を行うのだ。
// 戻り値はモデルに添付する画像列と、生成時に指定するアスペクト比なのだよ。
func prepareImageInputs(ctx context.Context, appCtx *builder.AppContext, tool domain.Tool, p stepParams) ([]domain.ImageData, domain.AspectRatio, error) {
	var aspect domain.AspectRatio
	if p.aspect != "" {
		parsed, err := domain.ParseAspectRatio(p.aspect)
		if err != nil {
			return nil, "", err
		}
		aspect = parsed
	}
	if tool == domain.ToolExpand && aspect == "" {
		return nil, "", &domain.ValidationError{Reason: "拡張には --aspect-ratio で拡張先の比率を指定してください"}
	}

	var images []domain.ImageData
	input, ok, err := resolveInput(ctx, appCtx, p)
	if err != nil {
		return nil, "", err
	}
	if ok {
		if tool == domain.ToolExpand {
			// 透明な余白つきキャンバスへ合成してから、余白の描き足しをモデルに任せるのだ
			canvas, err := compositor.Expand(input, aspect)
			if err != nil {
				return nil, "", err
			}
			input = canvas
		}
		images = append(images, input)
	}

	if tool == domain.ToolStyle {
		if p.style == "" {
			return nil, "", &domain.ValidationError{Reason: "スタイル転写には --style で参照画像を指定してください"}
		}
		style, err := appCtx.Assets.Load(ctx, p.style)
		if err != nil {
			return nil, "", err
		}
		images = append(images, style)
	}

	return images, aspect, nil
}

// resolveInput は履歴由来の画像か取得元パスのどちらかから入力画像を用意するのだ。
func resolveInput(ctx context.Context, appCtx *builder.AppContext, p stepParams) (domain.ImageData, bool, error) {
	if p.preloaded != nil {
		return *p.preloaded, true, nil
	}
	if p.input == "" {
		return domain.ImageData{}, false, nil
	}
	input, err := appCtx.Assets.Load(ctx, p.input)
	if err != nil {
		return domain.ImageData{}, false, err
	}
	return input, true, nil
}

// runVideo は animate を実行するのだ。ジョブ開始→完了待ち→ダウンロードの3段構えなのだよ。
func runVideo(ctx context.Context, appCtx *builder.AppContext, tool domain.Tool, p stepParams) (domain.HistoryItem, error) {
	opts := appCtx.Options

	var image *domain.ImageData
	input, ok, err := resolveInput(ctx, appCtx, p)
	if err != nil {
		return domain.HistoryItem{}, err
	}
	if ok {
		image = &input
	}

	var aspect domain.AspectRatio
	if p.aspect != "" {
		parsed, err := domain.ParseAspectRatio(p.aspect)
		if err != nil {
			return domain.HistoryItem{}, err
		}
		aspect = parsed
	}

	prompt := appCtx.Prompts.Build(tool, p.prompt)
	slog.Info("動画生成ジョブを開始するのだ...", "model", opts.VideoModel)

	taskRunner := builder.BuildTaskRunner(appCtx)
	var op *generator.VideoOperation
	err = taskRunner.Run(ctx, func(ctx context.Context) error {
		started, err := appCtx.Client.GenerateVideo(ctx, generator.VideoRequest{
			Model:       opts.VideoModel,
			Prompt:      prompt,
			Image:       image,
			AspectRatio: aspect,
		})
		if err != nil {
			return err
		}
		op = started
		return nil
	})
	if err != nil {
		return domain.HistoryItem{}, err
	}

	videoRunner := builder.BuildVideoRunner(appCtx)
	done, err := videoRunner.Await(ctx, op)
	if err != nil {
		return domain.HistoryItem{}, fmt.Errorf("動画ジョブの完了待ちに失敗したのだ: %w", err)
	}

	video, err := appCtx.Client.DownloadVideo(ctx, done)
	if err != nil {
		return domain.HistoryItem{}, fmt.Errorf("動画のダウンロードに失敗したのだ: %w", err)
	}

	return publishResult(ctx, appCtx, tool, p.prompt, *video)
}

// runVariantsStep は全アスペクト比の一括生成を実行するのだ。
func runVariantsStep(ctx context.Context, appCtx *builder.AppContext, tool domain.Tool) error {
	opts := appCtx.Options

	prompt := appCtx.Prompts.Build(tool, opts.Prompt)
	slog.Info("全比率の一括生成を開始するのだ...", "ratios", len(domain.AllAspectRatios), "model", opts.ImageModel)

	variantsRunner := builder.BuildVariantsRunner(appCtx)
	results, err := variantsRunner.Run(ctx, prompt, domain.AllAspectRatios)
	if err != nil {
		return fmt.Errorf("一括生成に失敗したのだ: %w", err)
	}

	for i, result := range results {
		ratio := domain.AllAspectRatios[i]
		path, err := appCtx.Publisher.SaveLabeled(ctx, tool, string(ratio), *result)
		if err != nil {
			return err
		}
		appCtx.History.Record(tool, opts.Prompt, *result, path)
	}

	slog.Info("一括生成が完了したのだ！", "count", len(results))
	return nil
}

// publishResult は成果物の保存と履歴記録をまとめて行うのだ。
func publishResult(ctx context.Context, appCtx *builder.AppContext, tool domain.Tool, prompt string, result domain.ImageData) (domain.HistoryItem, error) {
	path, err := appCtx.Publisher.Save(ctx, tool, result)
	if err != nil {
		return domain.HistoryItem{}, err
	}

	item := appCtx.History.Record(tool, prompt, result, path)
	slog.Info("処理が完了したのだ！", "tool", tool, "path", path, "history_id", item.ID)
	return item, nil
}
