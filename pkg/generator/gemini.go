package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-http-kit/httpkit"
	"google.golang.org/genai"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// GeminiClient は google.golang.org/genai を使った Client の実装です。
type GeminiClient struct {
	client     *genai.Client
	apiKey     string
	httpClient httpkit.HTTPClient
}

// NewGeminiClient は APIキーを検証して GeminiClient を初期化するのだ。
// キーが無い場合はリモート呼び出しの前にここで止まるのだよ。
func NewGeminiClient(ctx context.Context, apiKey string, httpClient httpkit.HTTPClient) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	return &GeminiClient{
		client:     client,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

// GenerateImage はプロンプトと参照画像を parts に組み立ててリクエストし、
// 最初の候補から画像データを取り出して返すのだ。
func (g *GeminiClient) GenerateImage(ctx context.Context, req ImageRequest) (*domain.ImageData, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	for _, img := range req.Images {
		if img.Empty() {
			continue
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: img.MimeType, Data: img.Data},
		})
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: string(req.AspectRatio)}
	}

	contents := []*genai.Content{{Parts: parts, Role: genai.RoleUser}}
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, err
	}

	return parseImageResponse(resp)
}

// parseImageResponse は Gemini のレスポンスから最初の画像パーツを抽出します。
func parseImageResponse(resp *genai.GenerateContentResponse) (*domain.ImageData, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした: %w", domain.ErrNoResult)
	}

	// 現在の仕様では、最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.ImageData{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	return nil, domain.ErrNoResult
}

// appendAPIKey はダウンロードURIにAPIキーのクエリを付与するのだ。
func appendAPIKey(uri, apiKey string) string {
	if apiKey == "" {
		return uri
	}
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "key=" + apiKey
}
