package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxDimension は編集リクエストに載せる画像の長辺の上限です。
	DefaultMaxDimension = 1024
	// DefaultQuality は縮小後の JPEG 品質 (0〜1) です。
	DefaultQuality = 0.8
)

// Downsize は縦横比を保ったまま長辺が maxDimension 以下になるよう縮小し、
// quality (0〜1) の JPEG として再エンコードします。拡大は行いません。
func Downsize(data []byte, maxDimension int, quality float64) ([]byte, error) {
	if maxDimension <= 0 {
		return nil, fmt.Errorf("maxDimension must be positive: %d", maxDimension)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxDimension)

	var out image.Image = src
	if w != b.Dx() || h != b.Dy() {
		g := gift.New(gift.Resize(w, h, gift.LanczosResampling))
		dst := image.NewRGBA(g.Bounds(b))
		g.Draw(dst, src)
		out = dst
	}
	return encodeJPEG(out, jpegQuality(quality))
}

// FitWithin は width x height を縦横比を保って maxDimension 内に収めたサイズを返します。
// 既に収まっている場合はそのままのサイズを返します。
func FitWithin(width, height, maxDimension int) (int, int) {
	if width > height {
		if width > maxDimension {
			height = scaled(height, maxDimension, width)
			width = maxDimension
		}
	} else if height > maxDimension {
		width = scaled(width, maxDimension, height)
		height = maxDimension
	}
	return width, height
}

func scaled(v, num, den int) int {
	s := int(float64(v) * float64(num) / float64(den))
	if s < 1 {
		return 1
	}
	return s
}

func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	switch {
	case v < 1:
		return 1
	case v > 100:
		return 100
	}
	return v
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
