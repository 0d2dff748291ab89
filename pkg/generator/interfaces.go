package generator

import (
	"context"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// ImageRequest は1回の画像生成要求です。
type ImageRequest struct {
	Model       string
	Prompt      string
	Images      []domain.ImageData // プロンプトに添付する参照画像（順序保持）
	AspectRatio domain.AspectRatio // 空なら指定なし
}

// VideoRequest は1回の動画生成要求です。プロンプトと画像は片方だけでも構いません。
type VideoRequest struct {
	Model       string
	Prompt      string
	Image       *domain.ImageData
	AspectRatio domain.AspectRatio
}

// VideoOperation はリモートサービスが返す長時間ジョブのハンドルです。
// Done になるまで PollVideo で更新し、完了後に URI またはインラインバイト列から
// 結果を取得します。
type VideoOperation struct {
	Raw        *genai.GenerateVideosOperation
	Done       bool
	URI        string
	MimeType   string
	VideoBytes []byte
}

// Client は生成AIサービスへの窓口です。Runner と Pipeline はこの
// インターフェースにだけ依存するため、ネットワークなしでテストできます。
type Client interface {
	// GenerateImage は画像を1枚生成して返します。
	GenerateImage(ctx context.Context, req ImageRequest) (*domain.ImageData, error)
	// GenerateVideo は動画生成ジョブを開始してハンドルを返します。
	GenerateVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error)
	// PollVideo はジョブの最新状態を取得します。
	PollVideo(ctx context.Context, op *VideoOperation) (*VideoOperation, error)
	// DownloadVideo は完了済みジョブの動画バイト列を取得します。
	DownloadVideo(ctx context.Context, op *VideoOperation) (*domain.ImageData, error)
}

// ImageCacher は、取得済み参照画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}
