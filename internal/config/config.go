package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/menu-photo-studio/pkg/gateway"
	"github.com/shouni/menu-photo-studio/pkg/imgutil"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey は GEMINI_API_KEY が設定されていない場合に返されます。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is required")

type Config struct {
	Addr             string
	GeminiAPIKey     string
	Models           gateway.ModelNames
	EditMaxDimension int
	EditJPEGQuality  float64
	FetchTimeout     time.Duration
	CORSAllowOrigins string
	LogLevel         slog.Level
	LogFormat        string
}

// Load は .env（存在すれば）と環境変数から設定を読み込みます。
func Load() (Config, error) {
	// .env は任意。存在しない場合は環境変数のみを使う
	_ = godotenv.Load()

	cfg := Config{
		Addr:         ":" + getenv("PORT", "8080"),
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Models: gateway.ModelNames{
			Parse: getenv("PARSE_MODEL", gateway.DefaultParseModel),
			Image: getenv("IMAGE_MODEL", gateway.DefaultImageModel),
			Edit:  getenv("EDIT_MODEL", gateway.DefaultEditModel),
		},
		EditMaxDimension: getenvInt("EDIT_MAX_DIMENSION", imgutil.DefaultMaxDimension, 64, 4096),
		EditJPEGQuality:  getenvFloat("EDIT_JPEG_QUALITY", imgutil.DefaultQuality, 0.1, 1),
		FetchTimeout:     time.Duration(getenvInt("FETCH_TIMEOUT_SECONDS", 30, 1, 300)) * time.Second,
		CORSAllowOrigins: os.Getenv("CORS_ALLOW_ORIGINS"),
		LogLevel:         parseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:        strings.ToLower(getenv("LOG_FORMAT", "json")),
	}
	if cfg.GeminiAPIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

// GatewayOptions は AI Gateway 用のオプションを組み立てます。
func (c Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Models:       c.Models,
		MaxDimension: c.EditMaxDimension,
		Quality:      c.EditJPEGQuality,
	}
}

func getenv(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func getenvInt(key string, fallback int, min int, max int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if v < min || v > max {
		return fallback
	}
	return v
}

func getenvFloat(key string, fallback float64, min float64, max float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	if v < min || v > max {
		return fallback
	}
	return v
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
