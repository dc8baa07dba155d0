package api

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
	return m.parseMenu(ctx, menuText)
}

func (m *mockGateway) GenerateImage(ctx context.Context, name, description, stylePrompt string) (*domain.Image, error) {
	if m.generateImage == nil {
		return &domain.Image{Data: []byte("png:" + name), MIMEType: "image/png"}, nil
	}
	return m.generateImage(ctx, name, description, stylePrompt)
}

func (m *mockGateway) EditImage(ctx context.Context, current domain.Image, instruction string) (*domain.Image, error) {
	if m.editImage == nil {
		return &domain.Image{Data: []byte(string(current.Data) + "+" + instruction), MIMEType: "image/jpeg"}, nil
	}
	return m.editImage(ctx, current, instruction)
}

type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) ([]byte, error)
	calls     []string
}

func (m *mockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls = append(m.calls, url)
	return m.fetchFunc(ctx, url)
}

func soupAndSalad(context.Context, string) ([]domain.MenuItem, error) {
	return []domain.MenuItem{
		{Name: "Soup", Description: "Tomato basil soup."},
		{Name: "Salad", Description: "Caesar salad with croutons."},
	}, nil
}
