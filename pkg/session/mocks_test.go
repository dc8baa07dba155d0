package session

import (
	"context"

	"github.com/shouni/menu-photo-studio/pkg/domain"
)

// --- Mocks ---

type mockGateway struct {
	editImage func(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error)
}

func (m *mockGateway) ParseMenu(ctx context.Context, menuText string) ([]domain.MenuItem, error) {
	return nil, nil
}

func (m *mockGateway) GenerateImage(ctx context.Context, name, description, stylePrompt string) (*domain.Image, error) {
	return nil, &domain.DishError{Dish: name}
}

func (m *mockGateway) EditImage(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error) {
	return m.editImage(ctx, current, instruction)
}

// suffixEditor は元画像のデータに指示文を連結した画像を返します。
func suffixEditor() *mockGateway {
	return &mockGateway{
		editImage: func(_ context.Context, current domain.Image, instruction string) (*domain.Image, error) {
			return &domain.Image{Data: []byte(string(current.Data) + "+" + instruction), MIMEType: "image/png"}, nil
		},
	}
}
