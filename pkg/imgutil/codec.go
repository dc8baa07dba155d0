package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// Blob は MIME タイプ付きのバイナリ画像です。
type Blob struct {
	Data     []byte
	MIMEType string
}

// DecodeBase64 は base64 文字列と宣言された MIME タイプから Blob を復元します。
// 中身が本当にその形式かどうかは検証しません。
func DecodeBase64(b64, mimeType string) (Blob, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Blob{}, fmt.Errorf("base64のデコードに失敗しました: %w", err)
	}
	return Blob{Data: data, MIMEType: mimeType}, nil
}

// EncodeBase64 は Blob を base64 文字列に変換します。
func EncodeBase64(blob Blob) (string, error) {
	if len(blob.Data) == 0 {
		return "", errors.New("blob is empty")
	}
	return base64.StdEncoding.EncodeToString(blob.Data), nil
}
