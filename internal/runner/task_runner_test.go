package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// newTestRunner は待機を記録だけして即座に戻る TaskRunner を作るのだ。
func newTestRunner(maxRetries int, initialDelay time.Duration) (*TaskRunner, *[]time.Duration) {
	delays := &[]time.Duration{}
	r := NewTaskRunner(maxRetries, initialDelay, nil)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return r, delays
}

func rateLimitErr() error {
	return genai.APIError{Code: 429, Message: "rate limited"}
}

func TestTaskRunner_SuccessAfterRetries(t *testing.T) {
	// 2回レート制限で失敗してから成功するタスクは、ちょうど2回の再試行で成功し、
	// バックオフは initialDelay, initialDelay*2 の順になるのだ。
	r, delays := newTestRunner(2, 2*time.Second)

	attempts := 0
	err := r.Run(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts <= 2 {
			return rateLimitErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays)
}

func TestTaskRunner_NonRateLimitFailsImmediately(t *testing.T) {
	// レート制限以外のエラーは再試行せず、元のエラーテキストを含めて確定失敗するのだ。
	r, delays := newTestRunner(2, 2*time.Second)

	attempts := 0
	err := r.Run(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("internal server boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "再試行してはいけないのだ")
	assert.Empty(t, *delays)
	assert.Contains(t, err.Error(), "internal server boom")
}

func TestTaskRunner_Exhaustion(t *testing.T) {
	// 常にレート制限で失敗するタスクは maxRetries+1 回だけ試行され、
	// クォータ超過のメッセージで終わるのだ。
	r, delays := newTestRunner(2, time.Second)

	attempts := 0
	err := r.Run(context.Background(), func(ctx context.Context) error {
		attempts++
		return rateLimitErr()
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts, "maxRetries+1 回で止まるべきなのだ")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *delays)
}

func TestTaskRunner_ZeroRetries(t *testing.T) {
	r, delays := newTestRunner(0, time.Second)

	attempts := 0
	err := r.Run(context.Background(), func(ctx context.Context) error {
		attempts++
		return rateLimitErr()
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *delays)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestTaskRunner_ProgressMessages(t *testing.T) {
	var messages []string
	r := NewTaskRunner(1, 3*time.Second, func(msg string) {
		messages = append(messages, msg)
	})
	r.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	attempts := 0
	err := r.Run(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return rateLimitErr()
		}
		return nil
	})

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "3s", "待ち時間がメッセージに含まれるべきなのだ")
}

func TestTaskRunner_ContextCancelDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewTaskRunner(2, time.Second, nil)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	err := r.Run(ctx, func(ctx context.Context) error {
		return rateLimitErr()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
