package runner

import (
	"context"
	"sync"

	"github.com/shouni/go-image-studio/pkg/domain"
	"github.com/shouni/go-image-studio/pkg/generator"
)

// --- Mocks ---

// mockClient は generator.Client を実装するのだ。
type mockClient struct {
	mu sync.Mutex

	generateImageFunc func(ctx context.Context, req generator.ImageRequest) (*domain.ImageData, error)
	generateVideoFunc func(ctx context.Context, req generator.VideoRequest) (*generator.VideoOperation, error)
	pollVideoFunc     func(ctx context.Context, op *generator.VideoOperation) (*generator.VideoOperation, error)
	downloadFunc      func(ctx context.Context, op *generator.VideoOperation) (*domain.ImageData, error)

	imageCalls int
	pollCalls  int
}

func (m *mockClient) GenerateImage(ctx context.Context, req generator.ImageRequest) (*domain.ImageData, error) {
	m.mu.Lock()
	m.imageCalls++
	m.mu.Unlock()
	if m.generateImageFunc != nil {
		return m.generateImageFunc(ctx, req)
	}
	return &domain.ImageData{Data: []byte("fake"), MimeType: "image/png"}, nil
}

func (m *mockClient) GenerateVideo(ctx context.Context, req generator.VideoRequest) (*generator.VideoOperation, error) {
	if m.generateVideoFunc != nil {
		return m.generateVideoFunc(ctx, req)
	}
	return &generator.VideoOperation{}, nil
}

func (m *mockClient) PollVideo(ctx context.Context, op *generator.VideoOperation) (*generator.VideoOperation, error) {
	m.mu.Lock()
	m.pollCalls++
	m.mu.Unlock()
	if m.pollVideoFunc != nil {
		return m.pollVideoFunc(ctx, op)
	}
	return &generator.VideoOperation{Done: true}, nil
}

func (m *mockClient) DownloadVideo(ctx context.Context, op *generator.VideoOperation) (*domain.ImageData, error) {
	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, op)
	}
	return &domain.ImageData{Data: []byte("mp4"), MimeType: "video/mp4"}, nil
}
