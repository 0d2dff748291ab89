package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// 各ツールに共通で添える品質指示なのだ。
const qualitySuffix = "high quality, sharp focus, high resolution"

// 固定プロンプトを使うツール用のテンプレート群です。
// ユーザー入力を受けないツール（retouch / upscale）はここの文言だけで動きます。
const (
	retouchInstruction = "Remove all watermarks, logos, text overlays and signatures from this image. " +
		"Reconstruct the areas behind them so the result looks natural and untouched. " +
		"Do not change anything else in the image."

	upscaleInstruction = "Upscale this image to a higher resolution. " +
		"Enhance fine details, sharpen edges and reduce noise and compression artifacts. " +
		"Preserve the original content, composition and colors exactly."

	outpaintInstruction = "The image has transparent or blank borders. " +
		"Fill in the empty areas by naturally extending the existing scene beyond its original edges. " +
		"Match the style, lighting and perspective of the source image. Keep the original content unchanged."

	styleInstruction = "The first image is the content. The second image defines the target art style. " +
		"Redraw the content image entirely in the style of the second image, " +
		"preserving the original composition and subjects."

	characterInstruction = "The first image contains the character to transfer. " +
		"Place this exact character, with identical appearance, clothing and features, into the described scene."
)

// Builder はツールごとのプロンプト文字列を組み立てます。
type Builder struct {
	suffix string
}

// NewBuilder は共通サフィックス付きの Builder を生成するのだ。
// suffix が空の場合はデフォルトの品質指示を使うのだよ。
func NewBuilder(suffix string) *Builder {
	if suffix == "" {
		suffix = qualitySuffix
	}
	return &Builder{suffix: suffix}
}

// Build は、ツール種別とユーザープロンプトからリモートモデルに渡す指示文を返すのだ。
func (b *Builder) Build(tool domain.Tool, userPrompt string) string {
	switch tool {
	case domain.ToolCreate, domain.ToolVariants:
		return b.withSuffix(userPrompt)
	case domain.ToolEdit:
		return b.withSuffix(fmt.Sprintf("Edit this image: %s. Only apply the requested change.", userPrompt))
	case domain.ToolRetouch:
		return retouchInstruction
	case domain.ToolUpscale:
		return upscaleInstruction
	case domain.ToolExpand:
		if userPrompt != "" {
			return fmt.Sprintf("%s Additional guidance: %s", outpaintInstruction, userPrompt)
		}
		return outpaintInstruction
	case domain.ToolStyle:
		if userPrompt != "" {
			return fmt.Sprintf("%s Additional guidance: %s", styleInstruction, userPrompt)
		}
		return styleInstruction
	case domain.ToolCharacter:
		return fmt.Sprintf("%s Scene: %s", characterInstruction, userPrompt)
	case domain.ToolAnimate:
		if userPrompt == "" {
			return "Animate this image with subtle, natural motion."
		}
		return userPrompt
	}
	return userPrompt
}

// withSuffix はユーザープロンプトに品質サフィックスを連結するのだ。
func (b *Builder) withSuffix(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return b.suffix
	}
	return prompt + ", " + b.suffix
}
