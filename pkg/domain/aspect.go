package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AspectRatio は生成画像の縦横比を表す列挙トークンです。
// サポートする値は固定の5種類で、それ以外はパース時に弾かれます。
type AspectRatio string

const (
	AspectSquare     AspectRatio = "1:1"
	AspectPortrait   AspectRatio = "3:4"
	AspectLandscape  AspectRatio = "4:3"
	AspectWide       AspectRatio = "16:9"
	AspectVertical   AspectRatio = "9:16"
)

// AllAspectRatios は variants コマンド等で利用する全比率の一覧なのだ。
var AllAspectRatios = []AspectRatio{
	AspectSquare,
	AspectPortrait,
	AspectLandscape,
	AspectWide,
	AspectVertical,
}

// ParseAspectRatio は "W:H" 形式の文字列を検証して AspectRatio に変換するのだ。
func ParseAspectRatio(s string) (AspectRatio, error) {
	for _, a := range AllAspectRatios {
		if s == string(a) {
			return a, nil
		}
	}
	supported := make([]string, 0, len(AllAspectRatios))
	for _, a := range AllAspectRatios {
		supported = append(supported, string(a))
	}
	return "", &ValidationError{Reason: fmt.Sprintf(
		"サポートされていないアスペクト比: '%s'。サポートされている値は [%s] です",
		s, strings.Join(supported, ", "))}
}

// Ratio は width/height の数値比を返します。
// 列挙値は常に "W:H" 形式かつ両辺が正なので、0除算は起こりません。
func (a AspectRatio) Ratio() float64 {
	w, h, ok := strings.Cut(string(a), ":")
	if !ok {
		return 1
	}
	wf, err1 := strconv.ParseFloat(w, 64)
	hf, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || hf == 0 {
		return 1
	}
	return wf / hf
}
