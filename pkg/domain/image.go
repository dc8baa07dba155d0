package domain

// Image は料理写真のバイナリとその MIME タイプです。
// HTTP 境界では base64 文字列として、内部ではバイト列として扱います。
type Image struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type"`
}

// IsEmpty は画像データを保持していない場合に true を返します。
func (img *Image) IsEmpty() bool {
	return img == nil || len(img.Data) == 0
}

// Clone はバイト列を複製した Image を返します。
func (img *Image) Clone() *Image {
	if img == nil {
		return nil
	}
	data := make([]byte, len(img.Data))
	copy(data, img.Data)
	return &Image{Data: data, MIMEType: img.MIMEType}
}
