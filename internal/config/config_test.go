package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shouni/menu-photo-studio/pkg/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"GEMINI_API_KEY", "PORT", "PARSE_MODEL", "IMAGE_MODEL", "EDIT_MODEL",
	"EDIT_MAX_DIMENSION", "EDIT_JPEG_QUALITY", "FETCH_TIMEOUT_SECONDS",
	"CORS_ALLOW_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("既定値", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "test-key", cfg.GeminiAPIKey)
		assert.Equal(t, gateway.DefaultParseModel, cfg.Models.Parse)
		assert.Equal(t, gateway.DefaultImageModel, cfg.Models.Image)
		assert.Equal(t, gateway.DefaultEditModel, cfg.Models.Edit)
		assert.Equal(t, 1024, cfg.EditMaxDimension)
		assert.InDelta(t, 0.8, cfg.EditJPEGQuality, 1e-9)
		assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("環境変数で上書き", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "k")
		t.Setenv("PORT", "9090")
		t.Setenv("EDIT_MODEL", "custom-edit")
		t.Setenv("EDIT_MAX_DIMENSION", "512")
		t.Setenv("EDIT_JPEG_QUALITY", "0.6")
		t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "TEXT")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "custom-edit", cfg.Models.Edit)
		assert.Equal(t, 512, cfg.EditMaxDimension)
		assert.InDelta(t, 0.6, cfg.EditJPEGQuality, 1e-9)
		assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)

		opts := cfg.GatewayOptions()
		assert.Equal(t, 512, opts.MaxDimension)
		assert.Equal(t, "custom-edit", opts.Models.Edit)
	})

	t.Run("範囲外や不正な値は既定値に戻す", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "k")
		t.Setenv("EDIT_MAX_DIMENSION", "abc")
		t.Setenv("EDIT_JPEG_QUALITY", "1.5")
		t.Setenv("FETCH_TIMEOUT_SECONDS", "0")
		t.Setenv("LOG_LEVEL", "verbose")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.EditMaxDimension)
		assert.InDelta(t, 0.8, cfg.EditJPEGQuality, 1e-9)
		assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	})

	t.Run("APIキーが無ければエラー", func(t *testing.T) {
		clearEnv(t)
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})
}
