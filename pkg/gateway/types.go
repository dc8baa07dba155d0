package gateway

import "github.com/shouni/menu-photo-studio/pkg/imgutil"

const (
	DefaultParseModel = "gemini-2.5-flash"
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultEditModel  = "gemini-2.5-flash-image"

	generatedMIMEType = "image/png"
	aspectRatio       = "4:3"
)

// ModelNames は各操作で使用するモデル名です。
type ModelNames struct {
	Parse string
	Image string
	Edit  string
}

// Options は GeminiGateway の設定です。ゼロ値の項目にはデフォルトが使われます。
type Options struct {
	Models       ModelNames
	MaxDimension int     // 編集前に縮小する長辺の上限
	Quality      float64 // 縮小後の JPEG 品質 (0〜1)
}

func (o Options) withDefaults() Options {
	if o.Models.Parse == "" {
		o.Models.Parse = DefaultParseModel
	}
	if o.Models.Image == "" {
		o.Models.Image = DefaultImageModel
	}
	if o.Models.Edit == "" {
		o.Models.Edit = DefaultEditModel
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = imgutil.DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = imgutil.DefaultQuality
	}
	return o
}

// ImageOutput はレスポンス解析の内部結果です。
type ImageOutput struct {
	Data     []byte
	MimeType string
}
