package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/menu-photo-studio/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

func buildParsePrompt(menuText string) string {
	return fmt.Sprintf(`Parse the following restaurant menu text and extract a list of dishes with their names and descriptions. Ignore prices, categories, and any other text.

Menu:
---
%s
---`, menuText)
}

func buildFoodPrompt(name, description, stylePrompt string) string {
	return fmt.Sprintf(`High-end, professional food photography of "%s".
Description: "%s".
%s
The dish must be perfectly plated and look incredibly delicious.
Shot with a DSLR camera, sharp focus, beautiful lighting, photorealistic.`, name, description, stylePrompt)
}

// menuSchema は抽出結果として要求する JSON スキーマです。
func menuSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The name of the dish.",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "A brief description of the dish.",
				},
			},
			Required: []string{"name", "description"},
		},
	}
}

// decodeMenuItems はモデルが返した JSON テキストを料理の一覧に変換します。
// 必須フィールドの欠落はスキーマ違反としてエラーにします。名前が空の項目は読み飛ばします。
func decodeMenuItems(text string) ([]domain.MenuItem, error) {
	var raw []struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, fmt.Errorf("JSONの解析に失敗しました: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(raw))
	for i, r := range raw {
		if r.Name == nil || r.Description == nil {
			return nil, fmt.Errorf("%d 件目に必須フィールドがありません", i)
		}
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			slog.Warn("名前が空の料理を読み飛ばしました", "index", i)
			continue
		}
		items = append(items, domain.MenuItem{
			Name:        name,
			Description: strings.TrimSpace(*r.Description),
		})
	}
	return items, nil
}

// toPart はバイト列を genai.Part (InlineData) に変換します。画像でなければ nil を返します。
func toPart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// parseToResponse は Gemini のレスポンスを解析して ImageOutput に変換します。
func parseToResponse(resp *gemini.Response) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, errors.New("Geminiからの有効な応答がありませんでした")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]
	if candidate == nil {
		return nil, errors.New("候補が空です")
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	return nil, errors.New("no image returned")
}
