package runner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-image-studio/pkg/domain"
	"github.com/shouni/go-image-studio/pkg/generator"
)

// VariantsRunner は、1つのプロンプトを複数のアスペクト比で並列生成するのだ。
// 各比率ごとの試行は TaskRunner で包まれるため、レート制限は比率単位で再試行されるのだ。
type VariantsRunner struct {
	client       generator.Client
	model        string
	interval     time.Duration // 流量制限の間隔
	maxRetries   int
	initialDelay time.Duration
}

// NewVariantsRunner は VariantsRunner を初期化するのだ。
func NewVariantsRunner(client generator.Client, model string, interval time.Duration, maxRetries int, initialDelay time.Duration) *VariantsRunner {
	return &VariantsRunner{
		client:       client,
		model:        model,
		interval:     interval,
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
	}
}

// Run は各比率の画像を並列生成して、入力と同じ順序で結果を返すのだ。
func (vr *VariantsRunner) Run(ctx context.Context, prompt string, ratios []domain.AspectRatio) ([]*domain.ImageData, error) {
	results := make([]*domain.ImageData, len(ratios))
	eg, egCtx := errgroup.WithContext(ctx)

	// Burst 2 により、開始直後に2枚までは同時にリクエストを開始できるのだ
	limiter := rate.NewLimiter(rate.Every(vr.interval), 2)
	slog.Info("並列バリアント生成を開始するのだ", "count", len(ratios), "interval", vr.interval)

	for i, ratio := range ratios {
		i, ratio := i, ratio // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 1. レートリミットに従って、自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			slog.Info("バリアントを生成中...", "ratio", ratio)

			// 2. 各比率の生成を TaskRunner で包んで実行するのだ
			taskRunner := NewTaskRunner(vr.maxRetries, vr.initialDelay, nil)
			return taskRunner.Run(egCtx, func(ctx context.Context) error {
				resp, err := vr.client.GenerateImage(ctx, generator.ImageRequest{
					Model:       vr.model,
					Prompt:      prompt,
					AspectRatio: ratio,
				})
				if err != nil {
					return err
				}
				results[i] = resp
				slog.Info("バリアント生成に成功したのだ", "ratio", ratio)
				return nil
			})
		})
	}

	// すべての並列処理が完了するのを待つのだ
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("すべてのバリアントが正常に生成されたのだ", "total", len(results))
	return results, nil
}
