package domain

import (
	"net/http"
	"strings"
)

// ImageData はエンコード済みのメディアバイト列とそのMIMEタイプを保持します。
// ファイル読み込み・URL取得・コンポジッターのいずれかが生成し、以後変更されません。
type ImageData struct {
	Data     []byte
	MimeType string
}

// Empty はデータを保持していない場合に true を返すのだ。
func (d ImageData) Empty() bool {
	return len(d.Data) == 0
}

// DetectImage はバイト列からMIMEタイプを判定して ImageData を作るのだ。
// 画像以外のデータが来た場合は DecodeError を返すのだよ。
func DetectImage(data []byte) (ImageData, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return ImageData{}, &DecodeError{Reason: "入力データが画像ではありません: " + mimeType}
	}
	return ImageData{Data: data, MimeType: mimeType}, nil
}
