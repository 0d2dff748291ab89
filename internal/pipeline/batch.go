package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-image-studio/internal/builder"
	"github.com/shouni/go-image-studio/internal/config"
	"github.com/shouni/go-image-studio/pkg/domain"
)

// ExecuteBatch は、JSONスクリプトに並べた複数ツールを1プロセス内で順に実行するのだ。
// 各ステップの成果は共有の履歴に記録され、後続ステップは from_step で
// 先行ステップの結果を入力画像として参照できるのだ。
func ExecuteBatch(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// スクリプトの読み込み
	rc, err := appCtx.Reader.Open(ctx, cfg.Options.ScriptFile)
	if err != nil {
		return fmt.Errorf("スクリプト '%s' の読み込みに失敗しました: %w", cfg.Options.ScriptFile, err)
	}
	defer rc.Close()

	var script domain.BatchScript
	if err := json.NewDecoder(rc).Decode(&script); err != nil {
		return fmt.Errorf("スクリプト '%s' のデコードに失敗しました: %w", cfg.Options.ScriptFile, err)
	}
	if err := script.Validate(); err != nil {
		return err
	}

	slog.Info("一括スクリプトを開始するのだ！", "steps", len(script.Steps))

	// ステップ番号 → 履歴ID の対応表なのだ
	stepIDs := make([]string, len(script.Steps))
	for i, step := range script.Steps {
		tool, err := domain.ParseTool(step.Tool)
		if err != nil {
			return err
		}
		slog.Info("ステップを実行するのだ...", "step", i+1, "total", len(script.Steps), "tool", tool)

		item, err := runBatchStep(ctx, appCtx, tool, step, stepIDs[:i])
		if err != nil {
			return fmt.Errorf("ステップ %d (%s) に失敗したのだ: %w", i+1, tool, err)
		}
		stepIDs[i] = item.ID
	}

	slog.Info("一括スクリプトが完了したのだ！", "steps", len(script.Steps))
	return nil
}

// runBatchStep は1ステップ分のパラメータを組み立てて実行するのだ。
// from_step 指定は履歴から解決され、動画の結果を画像入力に流用しようとすると
// ここで拒否されるのだよ。
func runBatchStep(ctx context.Context, appCtx *builder.AppContext, tool domain.Tool, step domain.BatchStep, priorIDs []string) (domain.HistoryItem, error) {
	p := stepParams{
		prompt: step.Prompt,
		input:  step.Input,
		style:  step.Style,
		aspect: step.AspectRatio,
	}

	if step.FromStep > 0 {
		img, err := appCtx.History.ResolveImage(priorIDs[step.FromStep-1])
		if err != nil {
			return domain.HistoryItem{}, err
		}
		p.preloaded = &img
		p.input = ""
	}

	if tool == domain.ToolAnimate {
		return runVideo(ctx, appCtx, tool, p)
	}
	return runImage(ctx, appCtx, tool, p)
}
