package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// TaskRunner は「1つの結果を生む」非同期タスクを、レート制限に限り指数バックオフで
// 再試行するラッパーなのだ。レート制限以外の失敗は即座に打ち切るのだよ。
type TaskRunner struct {
	maxRetries   int
	initialDelay time.Duration
	onProgress   func(string)

	// テストから待機を差し替えるためのシーム
	sleep func(context.Context, time.Duration) error
}

// NewTaskRunner は TaskRunner を初期化するのだ。onProgress は nil を許容するのだ。
func NewTaskRunner(maxRetries int, initialDelay time.Duration, onProgress func(string)) *TaskRunner {
	return &TaskRunner{
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		onProgress:   onProgress,
		sleep:        sleepContext,
	}
}

// Run はタスクを実行し、必要に応じて再試行するのだ。
//   - 成功: そのまま返る。
//   - レート制限エラーかつ試行回数が残っている: initialDelay * 2^attempt 待って再試行。
//   - レート制限エラーで試行を使い切った: クォータ超過のメッセージで確定失敗。
//   - それ以外のエラー: 1回で確定失敗（元のエラーを含むメッセージでラップ）。
//
// 部分的な成功はなく、各試行は完全に成功するか完全に失敗するかのどちらかなのだ。
func (r *TaskRunner) Run(ctx context.Context, task func(context.Context) error) error {
	schedule := r.newSchedule()

	for attempt := 0; ; attempt++ {
		err := task(ctx)
		if err == nil {
			return nil
		}

		if !domain.IsRateLimited(err) {
			return fmt.Errorf("生成に失敗しました: %w", err)
		}

		if attempt >= r.maxRetries {
			slog.Warn("レート制限のリトライを使い切ったのだ", "attempts", attempt+1, "error", err)
			return fmt.Errorf("%w (最後のエラー: %v)", domain.ErrQuotaExceeded, err)
		}

		wait := schedule.NextBackOff()
		r.progress(fmt.Sprintf("レート制限を検知したのだ。%s 待ってから再試行するのだよ (%d/%d)",
			wait, attempt+1, r.maxRetries))

		if err := r.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// newSchedule は乱数揺らぎなしの純粋な指数バックオフを構成するのだ。
// 初回 initialDelay、以降は2倍ずつ増えるのだ。
func (r *TaskRunner) newSchedule() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 24 * time.Hour
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (r *TaskRunner) progress(msg string) {
	slog.Info(msg)
	if r.onProgress != nil {
		r.onProgress(msg)
	}
}

// sleepContext はコンテキストのキャンセルを考慮して待機するのだ。
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
