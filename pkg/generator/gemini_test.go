package generator

import (
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/shouni/go-image-studio/pkg/domain"
)

func TestParseImageResponse(t *testing.T) {
	t.Run("正常系: 最初の候補の画像パーツを取り出すのだ", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{Text: "here is your image"},
							{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png-data")}},
						},
					},
				},
			},
		}

		out, err := parseImageResponse(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.MimeType != "image/png" || string(out.Data) != "png-data" {
			t.Errorf("parsed data mismatch: %+v", out)
		}
	})

	t.Run("異常系: 画像データなしは ErrNoResult なのだ", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "just text"}}}},
			},
		}
		_, err := parseImageResponse(resp)
		if !errors.Is(err, domain.ErrNoResult) {
			t.Errorf("expected ErrNoResult, got %v", err)
		}
	})

	t.Run("異常系: 候補ゼロもエラーなのだ", func(t *testing.T) {
		if _, err := parseImageResponse(&genai.GenerateContentResponse{}); err == nil {
			t.Error("expected error for empty response")
		}
	})

	t.Run("異常系: FinishReason が異常（SAFETY等）な場合", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonSafety},
			},
		}
		_, err := parseImageResponse(resp)
		if err == nil {
			t.Error("異常な FinishReason のときはエラーを返すべきなのだ")
		}
	})
}

func TestAppendAPIKey(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		key  string
		want string
	}{
		{"クエリなしURIには ? で付与", "https://example.com/v1/files/abc", "k", "https://example.com/v1/files/abc?key=k"},
		{"クエリありURIには & で付与", "https://example.com/dl?alt=media", "k", "https://example.com/dl?alt=media&key=k"},
		{"キーが空ならそのまま", "https://example.com/dl", "", "https://example.com/dl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appendAPIKey(tt.uri, tt.key); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
