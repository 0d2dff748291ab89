package generator

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PNGの最小構成バイナリ（シグネチャ含む）
var validPng = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

func TestAssetLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("ローカルパスは InputReader 経由で読むのだ", func(t *testing.T) {
		reader := &mockReader{
			openFunc: func(ctx context.Context, uri string) (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(validPng)), nil
			},
		}
		loader, err := NewAssetLoader(reader, &mockHTTPClient{}, nil, time.Hour)
		require.NoError(t, err)

		img, err := loader.Load(ctx, "input/photo.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MimeType)
	})

	t.Run("URLはキャッシュヒットすればHTTPを叩かないのだ", func(t *testing.T) {
		cache := &mockCache{data: map[string]any{cacheKeyAsset + "https://example.com/img.png": validPng}}
		fetched := false
		httpMock := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				fetched = true
				return validPng, nil
			},
		}
		loader, err := NewAssetLoader(&mockReader{}, httpMock, cache, time.Hour)
		require.NoError(t, err)

		img, err := loader.Load(ctx, "https://example.com/img.png")
		require.NoError(t, err)
		assert.False(t, fetched, "キャッシュヒット時はダウンロードしないのだ")
		assert.Equal(t, validPng, img.Data)
	})

	t.Run("プライベートIPへのURLはブロックされるのだ", func(t *testing.T) {
		loader, err := NewAssetLoader(&mockReader{}, &mockHTTPClient{}, nil, time.Hour)
		require.NoError(t, err)

		_, err = loader.Load(ctx, "http://127.0.0.1/evil.png")
		assert.Error(t, err)
	})

	t.Run("画像以外のデータは DecodeError 系のエラーになるのだ", func(t *testing.T) {
		reader := &mockReader{
			openFunc: func(ctx context.Context, uri string) (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader([]byte("plain text content here"))), nil
			},
		}
		loader, err := NewAssetLoader(reader, &mockHTTPClient{}, nil, time.Hour)
		require.NoError(t, err)

		_, err = loader.Load(ctx, "input/notes.txt")
		assert.Error(t, err)
	})
}

func TestNewAssetLoader(t *testing.T) {
	t.Run("nilチェック: 依存関係が足りない場合はエラーを返すのだ", func(t *testing.T) {
		if _, err := NewAssetLoader(nil, &mockHTTPClient{}, nil, time.Hour); err == nil {
			t.Error("expected error for nil reader")
		}
		if _, err := NewAssetLoader(&mockReader{}, nil, nil, time.Hour); err == nil {
			t.Error("expected error for nil httpClient")
		}
	})
}
