package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-image-studio/internal/builder"
	"github.com/shouni/go-image-studio/internal/config"
	"github.com/shouni/go-image-studio/pkg/domain"
	"github.com/shouni/go-image-studio/pkg/generator"
	"github.com/shouni/go-image-studio/pkg/history"
	"github.com/shouni/go-image-studio/pkg/prompts"
	"github.com/shouni/go-image-studio/pkg/publisher"
)

// mockClient は generator.Client を実装し、受け取った参照画像を記録するのだ。
type mockClient struct {
	receivedImages []domain.ImageData
}

func (m *mockClient) GenerateImage(ctx context.Context, req generator.ImageRequest) (*domain.ImageData, error) {
	m.receivedImages = append(m.receivedImages, req.Images...)
	return &domain.ImageData{Data: []byte("generated"), MimeType: "image/png"}, nil
}

func (m *mockClient) GenerateVideo(ctx context.Context, req generator.VideoRequest) (*generator.VideoOperation, error) {
	return &generator.VideoOperation{Done: true, VideoBytes: []byte("mp4"), MimeType: "video/mp4"}, nil
}

func (m *mockClient) PollVideo(ctx context.Context, op *generator.VideoOperation) (*generator.VideoOperation, error) {
	return op, nil
}

func (m *mockClient) DownloadVideo(ctx context.Context, op *generator.VideoOperation) (*domain.ImageData, error) {
	return &domain.ImageData{Data: op.VideoBytes, MimeType: op.MimeType}, nil
}

// mockWriter は remoteio.OutputWriter を実装するのだ。
type mockWriter struct {
	paths []string
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, mimeType string) error {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	m.paths = append(m.paths, path)
	return nil
}

func newTestAppContext(client generator.Client) *builder.AppContext {
	return &builder.AppContext{
		Config:    &config.Config{},
		Options:   config.GenerateOptions{ImageModel: "test-image-model", VideoModel: "test-video-model"},
		Client:    client,
		Prompts:   prompts.NewBuilder(""),
		History:   history.NewStore(),
		Publisher: publisher.NewPublisher(&mockWriter{}, "output"),
	}
}

func TestRunBatchStep_FromHistory(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	appCtx := newTestAppContext(client)

	// 先行ステップの成果として画像を履歴に積んでおくのだ
	prev := appCtx.History.Record(domain.ToolCreate, "a lighthouse",
		domain.ImageData{Data: []byte("base-image"), MimeType: "image/png"}, "output/a.png")

	step := domain.BatchStep{Tool: "edit", Prompt: "add seagulls", FromStep: 1}
	item, err := runBatchStep(ctx, appCtx, domain.ToolEdit, step, []string{prev.ID})
	require.NoError(t, err)

	// 履歴の画像がそのまま生成リクエストの入力になっているのだ
	require.Len(t, client.receivedImages, 1)
	assert.Equal(t, []byte("base-image"), client.receivedImages[0].Data)

	// 新しい成果も履歴に積まれ、先頭に来るのだ
	assert.Equal(t, 2, appCtx.History.Len())
	assert.Equal(t, item.ID, appCtx.History.List()[0].ID)
	assert.Equal(t, domain.ToolEdit, item.Tool)
}

func TestRunBatchStep_RejectsVideoReference(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	appCtx := newTestAppContext(client)

	prev := appCtx.History.Record(domain.ToolAnimate, "waves",
		domain.ImageData{Data: []byte("mp4-bytes"), MimeType: "video/mp4"}, "output/a.mp4")

	step := domain.BatchStep{Tool: "upscale", FromStep: 1}
	_, err := runBatchStep(ctx, appCtx, domain.ToolUpscale, step, []string{prev.ID})
	require.Error(t, err)

	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	// 拒否された場合、生成リクエストは一切飛ばないのだ
	assert.Empty(t, client.receivedImages)
}
