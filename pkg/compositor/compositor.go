package compositor

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// Plan はアスペクト比拡張で確保するキャンバスのサイズと、
// 元画像を中央配置するためのオフセットを表します。
type Plan struct {
	Width   int
	Height  int
	OffsetX int
	OffsetY int
}

// PlanExpansion は元画像の寸法と目標比率からキャンバス設計を計算する純粋関数なのだ。
// 目標が相対的に横長なら高さを維持して幅を広げ、縦長（または同比率）なら
// 幅を維持して高さを広げるのだよ。端数は切り上げて1ピクセルも欠けないようにするのだ。
func PlanExpansion(srcWidth, srcHeight int, target domain.AspectRatio) Plan {
	targetRatio := target.Ratio()
	srcRatio := float64(srcWidth) / float64(srcHeight)

	if targetRatio > srcRatio {
		newWidth := int(math.Ceil(float64(srcHeight) * targetRatio))
		return Plan{
			Width:   newWidth,
			Height:  srcHeight,
			OffsetX: (newWidth - srcWidth) / 2,
			OffsetY: 0,
		}
	}

	newHeight := int(math.Ceil(float64(srcWidth) / targetRatio))
	return Plan{
		Width:   srcWidth,
		Height:  newHeight,
		OffsetX: 0,
		OffsetY: (newHeight - srcHeight) / 2,
	}
}

// Expand は元画像を目標比率の透明なキャンバスの中央に合成して再エンコードします。
// 広がった余白は空のままにして、埋める作業はリモートの生成サービスに任せます。
func Expand(src domain.ImageData, target domain.AspectRatio) (domain.ImageData, error) {
	img, err := imaging.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return domain.ImageData{}, &domain.DecodeError{Reason: "入力画像のデコードに失敗しました", Err: err}
	}

	bounds := img.Bounds()
	plan := PlanExpansion(bounds.Dx(), bounds.Dy(), target)

	canvas := imaging.New(plan.Width, plan.Height, color.NRGBA{})
	canvas = imaging.Paste(canvas, img, image.Pt(plan.OffsetX, plan.OffsetY))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, formatForMime(src.MimeType)); err != nil {
		return domain.ImageData{}, &domain.DecodeError{Reason: "拡張キャンバスのエンコードに失敗しました", Err: err}
	}

	// 元画像と同じMIMEタイプで返す（パディング後も形式は維持する）
	return domain.ImageData{Data: buf.Bytes(), MimeType: src.MimeType}, nil
}

// formatForMime はMIMEタイプをエンコード形式に対応付けるのだ。未知の形式はPNGに倒すのだ。
func formatForMime(mimeType string) imaging.Format {
	switch mimeType {
	case "image/jpeg":
		return imaging.JPEG
	case "image/gif":
		return imaging.GIF
	case "image/bmp":
		return imaging.BMP
	case "image/tiff":
		return imaging.TIFF
	default:
		return imaging.PNG
	}
}
