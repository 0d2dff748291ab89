package generator

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// GenerateVideo は Veo 系モデルの長時間ジョブを開始してハンドルを返すのだ。
func (g *GeminiClient) GenerateVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error) {
	var image *genai.Image
	if req.Image != nil && !req.Image.Empty() {
		image = &genai.Image{
			ImageBytes: req.Image.Data,
			MIMEType:   req.Image.MimeType,
		}
	}

	cfg := &genai.GenerateVideosConfig{}
	if req.AspectRatio != "" {
		cfg.AspectRatio = string(req.AspectRatio)
	}

	op, err := g.client.Models.GenerateVideos(ctx, req.Model, req.Prompt, image, cfg)
	if err != nil {
		return nil, err
	}

	// ジョブが同期的に完了して返ることもあるため、開始直後でも結果参照を取り出すのだ
	return resolveVideoOperation(op)
}

// PollVideo はジョブの状態を更新し、完了していれば結果の参照を埋めて返すのだ。
func (g *GeminiClient) PollVideo(ctx context.Context, op *VideoOperation) (*VideoOperation, error) {
	if op == nil || op.Raw == nil {
		return nil, fmt.Errorf("ポーリング対象のジョブハンドルがありません")
	}

	updated, err := g.client.Operations.GetVideosOperation(ctx, op.Raw, nil)
	if err != nil {
		return nil, err
	}

	return resolveVideoOperation(updated)
}

// resolveVideoOperation は genai のジョブハンドルをラップし、
// 完了済みなら結果（URI / インラインバイト列 / MIME）を取り出して埋めるのだ。
func resolveVideoOperation(raw *genai.GenerateVideosOperation) (*VideoOperation, error) {
	next := &VideoOperation{Raw: raw, Done: raw.Done}
	if !raw.Done {
		return next, nil
	}

	if raw.Response == nil || len(raw.Response.GeneratedVideos) == 0 {
		return nil, fmt.Errorf("動画ジョブは完了しましたが結果が空でした: %w", domain.ErrNoResult)
	}

	video := raw.Response.GeneratedVideos[0].Video
	if video == nil {
		return nil, fmt.Errorf("動画ジョブは完了しましたが結果が空でした: %w", domain.ErrNoResult)
	}

	next.URI = video.URI
	next.VideoBytes = video.VideoBytes
	next.MimeType = video.MIMEType
	if next.MimeType == "" {
		next.MimeType = "video/mp4"
	}
	return next, nil
}

// DownloadVideo は完了済みジョブから動画バイト列を取得するのだ。
// インラインで返っていればそれを使い、URI形式ならAPIキーを付けて取得するのだよ。
func (g *GeminiClient) DownloadVideo(ctx context.Context, op *VideoOperation) (*domain.ImageData, error) {
	if op == nil || !op.Done {
		return nil, fmt.Errorf("未完了のジョブから動画を取得することはできません")
	}

	if len(op.VideoBytes) > 0 {
		return &domain.ImageData{Data: op.VideoBytes, MimeType: op.MimeType}, nil
	}

	if op.URI == "" {
		return nil, domain.ErrNoResult
	}

	data, err := g.httpClient.FetchBytes(ctx, appendAPIKey(op.URI, g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("動画のダウンロードに失敗しました: %w", err)
	}

	mimeType := op.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return &domain.ImageData{Data: data, MimeType: mimeType}, nil
}
