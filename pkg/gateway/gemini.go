package gateway

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shouni/menu-photo-studio/pkg/domain"
	"github.com/shouni/menu-photo-studio/pkg/imgutil"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GeminiGateway は Gemini / Imagen を利用する Gateway の実装です。
// 外部サービスのエラーは詳細をログに残し、操作ごとに決まったエラーへ変換して返します。
type GeminiGateway struct {
	client ModelClient
	editor ImageEditor
	opts   Options
}

// NewGeminiGateway は依存関係を注入して GeminiGateway を初期化します。
func NewGeminiGateway(client ModelClient, editor ImageEditor, opts Options) (*GeminiGateway, error) {
	if client == nil {
		return nil, errors.New("client (ModelClient) is required")
	}
	if editor == nil {
		return nil, errors.New("editor (ImageEditor) is required")
	}
	return &GeminiGateway{
		client: client,
		editor: editor,
		opts:   opts.withDefaults(),
	}, nil
}

// ParseMenu はメニューテキストを構造化抽出モデルに送り、料理の一覧を返します。
func (g *GeminiGateway) ParseMenu(ctx context.Context, menuText string) ([]domain.MenuItem, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   menuSchema(),
	}

	resp, err := g.client.GenerateContent(ctx, g.opts.Models.Parse, genai.Text(buildParsePrompt(menuText)), config)
	if err != nil {
		slog.ErrorContext(ctx, "メニュー解析リクエストに失敗しました", "model", g.opts.Models.Parse, "error", err)
		return nil, domain.ErrMenuNotUnderstood
	}
	if resp == nil {
		slog.ErrorContext(ctx, "メニュー解析の応答が空です", "model", g.opts.Models.Parse)
		return nil, domain.ErrMenuNotUnderstood
	}

	items, err := decodeMenuItems(resp.Text())
	if err != nil {
		slog.ErrorContext(ctx, "メニュー解析の応答がスキーマに一致しません", "error", err)
		return nil, domain.ErrMenuNotUnderstood
	}

	slog.InfoContext(ctx, "メニューを解析しました", "dishes", len(items))
	return items, nil
}

// GenerateImage は料理名・説明・スタイルから1枚の写真を生成します。
func (g *GeminiGateway) GenerateImage(ctx context.Context, name, description, stylePrompt string) (*domain.Image, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: generatedMIMEType,
		AspectRatio:    aspectRatio,
	}

	resp, err := g.client.GenerateImages(ctx, g.opts.Models.Image, buildFoodPrompt(name, description, stylePrompt), config)
	if err != nil {
		slog.ErrorContext(ctx, "画像生成リクエストに失敗しました", "dish", name, "model", g.opts.Models.Image, "error", err)
		return nil, &domain.DishError{Dish: name}
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		slog.ErrorContext(ctx, "画像生成の応答に画像が含まれていません", "dish", name)
		return nil, &domain.DishError{Dish: name}
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		slog.ErrorContext(ctx, "生成された画像データが空です", "dish", name)
		return nil, &domain.DishError{Dish: name}
	}

	img := generated.Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = generatedMIMEType
	}
	return &domain.Image{Data: img.ImageBytes, MIMEType: mimeType}, nil
}

// EditImage は画像を縮小してから指示テキストとともに編集モデルへ送信します。
func (g *GeminiGateway) EditImage(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error) {
	if current.IsEmpty() {
		slog.WarnContext(ctx, "編集対象の画像が空です")
		return nil, domain.ErrEditFailed
	}

	// 編集サービスのペイロード上限に収めるため縮小する
	data, err := imgutil.Downsize(current.Data, g.opts.MaxDimension, g.opts.Quality)
	if err != nil {
		slog.ErrorContext(ctx, "編集前の画像縮小に失敗しました", "error", err)
		return nil, domain.ErrEditFailed
	}

	imgPart := toPart(data)
	if imgPart == nil {
		slog.ErrorContext(ctx, "縮小後のデータが画像として認識できません")
		return nil, domain.ErrEditFailed
	}
	parts := []*genai.Part{imgPart, {Text: instruction}}

	resp, err := g.editor.GenerateWithParts(ctx, g.opts.Models.Edit, parts, gemini.GenerateOptions{})
	if err != nil {
		slog.ErrorContext(ctx, "画像編集リクエストに失敗しました", "model", g.opts.Models.Edit, "error", err)
		return nil, domain.ErrEditFailed
	}

	out, err := parseToResponse(resp)
	if err != nil {
		slog.ErrorContext(ctx, "画像編集の応答を解析できませんでした", "error", err)
		return nil, domain.ErrEditFailed
	}

	slog.InfoContext(ctx, "画像を編集しました", "input_bytes", len(data), "output_bytes", len(out.Data))
	return &domain.Image{Data: out.Data, MIMEType: out.MimeType}, nil
}
