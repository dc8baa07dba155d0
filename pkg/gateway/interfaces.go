package gateway

import (
	"context"

	"github.com/shouni/menu-photo-studio/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// Gateway はアプリケーションが外部の生成AIを利用するための唯一の窓口です。
// 返すエラーはすべて利用者に提示可能なものに変換済みです。
type Gateway interface {
	// ParseMenu はメニューテキストから料理の一覧を抽出します。空のスライスはエラーではありません。
	ParseMenu(ctx context.Context, menuText string) ([]domain.MenuItem, error)
	// GenerateImage は料理1品の写真を生成します。
	GenerateImage(ctx context.Context, name, description, stylePrompt string) (*domain.Image, error)
	// EditImage は既存の画像に自然言語の指示で修正を加えます。
	EditImage(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error)
}

// ModelClient はテキスト生成と画像生成のリクエストを送る通信クライアントです。
// *genai.Models がこのインターフェースを満たします。
type ModelClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ImageEditor は画像とテキストのパーツから画像を生成するクライアントです。
// go-gemini-client の gemini.GenerativeModel がこのインターフェースを満たします。
type ImageEditor interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

var _ ImageEditor = gemini.GenerativeModel(nil)
