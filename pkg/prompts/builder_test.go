package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-image-studio/pkg/domain"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("")

	t.Run("create はユーザープロンプトに品質サフィックスを足すのだ", func(t *testing.T) {
		got := b.Build(domain.ToolCreate, "a cat on the moon")
		if !strings.HasPrefix(got, "a cat on the moon") {
			t.Errorf("prompt should start with user input: %s", got)
		}
		if !strings.Contains(got, "high quality") {
			t.Errorf("prompt should contain quality suffix: %s", got)
		}
	})

	t.Run("retouch と upscale は固定プロンプトで、ユーザー入力を無視するのだ", func(t *testing.T) {
		retouch := b.Build(domain.ToolRetouch, "should be ignored")
		if strings.Contains(retouch, "should be ignored") {
			t.Error("retouch must not include user input")
		}
		if !strings.Contains(retouch, "watermark") {
			t.Errorf("retouch prompt should mention watermarks: %s", retouch)
		}

		upscale := b.Build(domain.ToolUpscale, "")
		if !strings.Contains(upscale, "resolution") {
			t.Errorf("upscale prompt should mention resolution: %s", upscale)
		}
	})

	t.Run("expand は余白を埋める指示で、追加ガイダンスを連結できるのだ", func(t *testing.T) {
		plain := b.Build(domain.ToolExpand, "")
		if !strings.Contains(plain, "blank borders") {
			t.Errorf("outpaint prompt should mention blank borders: %s", plain)
		}
		guided := b.Build(domain.ToolExpand, "make it a sunset")
		if !strings.Contains(guided, "make it a sunset") {
			t.Errorf("guidance should be appended: %s", guided)
		}
	})

	t.Run("character はシーン記述を埋め込むのだ", func(t *testing.T) {
		got := b.Build(domain.ToolCharacter, "walking in a forest")
		if !strings.Contains(got, "Scene: walking in a forest") {
			t.Errorf("scene should be embedded: %s", got)
		}
	})

	t.Run("animate はプロンプト無しでもデフォルトの動き指示を返すのだ", func(t *testing.T) {
		got := b.Build(domain.ToolAnimate, "")
		if got == "" {
			t.Error("animate prompt must not be empty")
		}
	})

	t.Run("カスタムサフィックスが使えるのだ", func(t *testing.T) {
		custom := NewBuilder("oil painting style")
		got := custom.Build(domain.ToolCreate, "a dog")
		if !strings.Contains(got, "oil painting style") {
			t.Errorf("custom suffix should be applied: %s", got)
		}
	})
}
