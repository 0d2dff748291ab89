package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/shouni/go-image-studio/pkg/generator"
)

// 動画ジョブの待機中に順番に表示する進捗メッセージなのだ。
// ジョブがリストより長生きした場合は先頭に巻き戻して繰り返すのだ。
var defaultWaitMessages = []string{
	"動画を錬成中なのだ。少し時間がかかるのだよ...",
	"フレームを描き込んでいるのだ...",
	"動きを付けているところなのだ。もうちょっとなのだ...",
	"仕上げの処理中なのだ。いい感じになってきたのだ...",
	"最終チェック中なのだ。あと少しで完成なのだ！",
}

// VideoRunner は動画生成ジョブが終わるまで一定間隔でポーリングするのだ。
// リモート側のジョブ寿命以外に上限は設けない（キャンセルは context に委ねる）。
type VideoRunner struct {
	client     generator.Client
	interval   time.Duration
	messages   []string
	onProgress func(string)

	sleep func(context.Context, time.Duration) error
}

// NewVideoRunner は VideoRunner を初期化するのだ。interval が0以下なら10秒にするのだ。
func NewVideoRunner(client generator.Client, interval time.Duration, onProgress func(string)) *VideoRunner {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &VideoRunner{
		client:     client,
		interval:   interval,
		messages:   defaultWaitMessages,
		onProgress: onProgress,
		sleep:      sleepContext,
	}
}

// Await はジョブが Done になるまでポーリングを続け、完了したハンドルを返すのだ。
func (vr *VideoRunner) Await(ctx context.Context, op *generator.VideoOperation) (*generator.VideoOperation, error) {
	for i := 0; !op.Done; i++ {
		vr.progress(vr.messages[i%len(vr.messages)])

		if err := vr.sleep(ctx, vr.interval); err != nil {
			return nil, err
		}

		next, err := vr.client.PollVideo(ctx, op)
		if err != nil {
			return nil, err
		}
		op = next
	}
	return op, nil
}

func (vr *VideoRunner) progress(msg string) {
	slog.Info(msg)
	if vr.onProgress != nil {
		vr.onProgress(msg)
	}
}
