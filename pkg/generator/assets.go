package generator

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-image-studio/pkg/domain"
)

const cacheKeyAsset = "asset_bytes:"

// AssetLoader は入力画像の取得を一手に引き受けるコンポーネントです。
// ローカルパスと gs:// は InputReader、http(s) は SSRF検証つきのHTTPクライアントで
// 取得し、URL経由のバイト列はTTLキャッシュに保持します。
type AssetLoader struct {
	reader     remoteio.InputReader
	httpClient httpkit.HTTPClient
	cache      ImageCacher
	cacheTTL   time.Duration
}

// NewAssetLoader は依存関係を注入して AssetLoader を初期化します。
// cache は nil を許容（キャッシュなし動作）。
func NewAssetLoader(reader remoteio.InputReader, httpClient httpkit.HTTPClient, cache ImageCacher, cacheTTL time.Duration) (*AssetLoader, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader は必須です")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}

	return &AssetLoader{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}, nil
}

// Load は指定されたソースから画像を読み込んで ImageData を返すのだ。
// 画像として解釈できないデータは DecodeError になるのだよ。
func (l *AssetLoader) Load(ctx context.Context, source string) (domain.ImageData, error) {
	data, err := l.fetchBytes(ctx, source)
	if err != nil {
		return domain.ImageData{}, err
	}
	img, err := domain.DetectImage(data)
	if err != nil {
		return domain.ImageData{}, fmt.Errorf("入力 '%s' の読み込みに失敗しました: %w", source, err)
	}
	return img, nil
}

func (l *AssetLoader) fetchBytes(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetchURL(ctx, source)
	}

	// ローカルパスと gs:// は InputReader に委ねる
	rc, err := l.reader.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("入力 '%s' を開けませんでした: %w", source, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *AssetLoader) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	if l.cache != nil {
		if val, ok := l.cache.Get(cacheKeyAsset + rawURL); ok {
			if data, ok := val.([]byte); ok {
				return data, nil
			}
		}
	}

	if safe, err := isSafeURL(rawURL); !safe || err != nil {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}

	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("参照画像のダウンロードに失敗しました: %w", err)
	}

	if l.cache != nil {
		l.cache.Set(cacheKeyAsset+rawURL, data, l.cacheTTL)
	}
	return data, nil
}

// isSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP アドレスに対してプライベート IP チェックを行います。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP

	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
