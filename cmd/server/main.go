package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/menu-photo-studio/internal/api"
	"github.com/shouni/menu-photo-studio/internal/config"
	"github.com/shouni/menu-photo-studio/pkg/gallery"
	"github.com/shouni/menu-photo-studio/pkg/gateway"
	"github.com/shouni/menu-photo-studio/pkg/orchestrator"
	"github.com/shouni/menu-photo-studio/pkg/session"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("サーバーを終了します", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	// 画像編集は go-gemini-client の GenerateWithParts を使う
	aiClient, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		return fmt.Errorf("画像編集クライアントの初期化に失敗しました: %w", err)
	}
	gw, err := gateway.NewGeminiGateway(client.Models, aiClient, cfg.GatewayOptions())
	if err != nil {
		return err
	}

	g := gallery.New()
	orch, err := orchestrator.New(gw, g)
	if err != nil {
		return err
	}
	sessions, err := session.NewRegistry(gw, g)
	if err != nil {
		return err
	}

	srv := api.NewServer(cfg, orch, g, sessions, api.NewMenuFetcher(cfg.FetchTimeout))
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("サーバーを起動します", "addr", cfg.Addr, "image_model", cfg.Models.Image, "edit_model", cfg.Models.Edit)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("シャットダウンを開始します")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	srv.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	// 実行中の画像生成は途中で止めずに完了を待つ
	if err := orch.Wait(shutdownCtx); err != nil {
		slog.Warn("画像生成の完了を待たずに終了します", "error", err)
	}
	slog.Info("サーバーを停止しました")
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
