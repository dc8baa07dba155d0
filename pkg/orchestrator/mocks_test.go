package orchestrator

import (
	"context"

	"github.com/shouni/menu-photo-studio/pkg/domain"
)

// --- Mocks ---

type mockGateway struct {
	parseMenu     func(ctx context.Context, menuText string) ([]domain.MenuItem, error)
	generateImage func(ctx context.Context, name, description, stylePrompt string) (*domain.Image, error)
	editImage     func(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error)
}

func (m *mockGateway) ParseMenu(ctx context.Context, menuText string) ([]domain.MenuItem, error) {
	if m.parseMenu == nil {
		return nil, nil
	}
	return m.parseMenu(ctx, menuText)
}

func (m *mockGateway) GenerateImage(ctx context.Context, name, description, stylePrompt string) (*domain.Image, error) {
	if m.generateImage == nil {
		return &domain.Image{Data: []byte(name), MIMEType: "image/png"}, nil
	}
	return m.generateImage(ctx, name, description, stylePrompt)
}

func (m *mockGateway) EditImage(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error) {
	if m.editImage == nil {
		return nil, domain.ErrEditFailed
	}
	return m.editImage(ctx, current, instruction)
}

func menuOf(names ...string) func(context.Context, string) ([]domain.MenuItem, error) {
	return func(context.Context, string) ([]domain.MenuItem, error) {
		items := make([]domain.MenuItem, len(names))
		for i, n := range names {
			items[i] = domain.MenuItem{Name: n, Description: n + " description"}
		}
		return items, nil
	}
}
