package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// Publisher は生成結果の永続化と出力ファイル名の決定を担います。
type Publisher struct {
	writer    remoteio.OutputWriter
	outputDir string
	now       func() time.Time
}

// NewPublisher は OutputWriter と出力先ディレクトリを束ねた Publisher を生成するのだ。
func NewPublisher(writer remoteio.OutputWriter, outputDir string) *Publisher {
	return &Publisher{
		writer:    writer,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Save は結果を決定的な命名規則で保存し、書き出したパスを返すのだ。
// ファイル名は ツール名_タイムスタンプ拡張子 で、拡張子はMIMEタイプから決めるのだよ。
func (p *Publisher) Save(ctx context.Context, tool domain.Tool, result domain.ImageData) (string, error) {
	name := p.FileName(tool, result.MimeType)
	fullPath, err := ResolveOutputPath(p.outputDir, name)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(result.Data), result.MimeType); err != nil {
		return "", fmt.Errorf("結果の書き込みに失敗しました %s: %w", fullPath, err)
	}

	slog.Info("生成結果を保存したのだ", "path", fullPath, "mime_type", result.MimeType, "bytes", len(result.Data))
	return fullPath, nil
}

// SaveLabeled はラベル付きの命名で結果を保存するのだ。
// variants のように同一時刻に複数保存するツールは、ラベルで衝突を避けるのだよ。
func (p *Publisher) SaveLabeled(ctx context.Context, tool domain.Tool, label string, result domain.ImageData) (string, error) {
	name := fmt.Sprintf("%s_%s_%s%s", tool, sanitizeLabel(label), p.now().Format("20060102_150405"), extensionFor(result.MimeType, tool.Kind()))
	fullPath, err := ResolveOutputPath(p.outputDir, name)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(result.Data), result.MimeType); err != nil {
		return "", fmt.Errorf("結果の書き込みに失敗しました %s: %w", fullPath, err)
	}

	slog.Info("生成結果を保存したのだ", "path", fullPath, "mime_type", result.MimeType, "bytes", len(result.Data))
	return fullPath, nil
}

// FileName はツール名・タイムスタンプ・MIME由来の拡張子からファイル名を組み立てます。
func (p *Publisher) FileName(tool domain.Tool, mimeType string) string {
	return fmt.Sprintf("%s_%s%s", tool, p.now().Format("20060102_150405"), extensionFor(mimeType, tool.Kind()))
}

// sanitizeLabel はアスペクト比のようなラベルをファイル名に使える形へ変換します。
func sanitizeLabel(label string) string {
	return strings.ReplaceAll(label, ":", "x")
}

// extensionFor はMIMEタイプから拡張子を決定するのだ。
// 決められない場合はメディア種別ごとのフォールバックに倒すのだよ。
func extensionFor(mimeType string, kind domain.ResultKind) string {
	extensions, err := mime.ExtensionsByType(mimeType)
	if err == nil && len(extensions) > 0 {
		return extensions[0]
	}

	slog.Warn("MIMEタイプから拡張子を決定できなかったため、デフォルトに倒します", "mime_type", mimeType)
	if kind == domain.KindVideo {
		return ".mp4"
	}
	return ".png"
}
