package domain

import "github.com/google/uuid"

// OriginalInstruction は編集前のベースライン画像を示す履歴ラベルです。
const OriginalInstruction = "Original"

// NoParent は親バージョンを持たない履歴エントリの Parent 値です。
const NoParent = -1

// MenuItem はメニューテキストから抽出された料理1件です。
type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Edit は料理画像の履歴上の1バージョンです。一度追加されたら変更されません。
type Edit struct {
	Instruction string `json:"instruction"`
	Image       Image  `json:"image"`
	Parent      int    `json:"parent"` // この編集の元になった履歴インデックス
}

// Dish はメニューの1品と、その写真の状態を保持します。
type Dish struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CurrentImage *Image `json:"current_image,omitempty"`
	IsGenerating bool   `json:"is_generating"`
	Error        string `json:"error,omitempty"`
	EditHistory  []Edit `json:"edit_history"`
}

// NewPendingDish は生成待ちのプレースホルダーを作成します。
func NewPendingDish(item MenuItem) Dish {
	return Dish{
		ID:           uuid.NewString(),
		Name:         item.Name,
		Description:  item.Description,
		IsGenerating: true,
		EditHistory:  []Edit{},
	}
}

// Clone は履歴と画像を含めて Dish を深く複製します。
func (d Dish) Clone() Dish {
	out := d
	out.CurrentImage = d.CurrentImage.Clone()
	out.EditHistory = make([]Edit, len(d.EditHistory))
	for i, e := range d.EditHistory {
		out.EditHistory[i] = Edit{
			Instruction: e.Instruction,
			Image:       *e.Image.Clone(),
			Parent:      e.Parent,
		}
	}
	return out
}

// Version は履歴インデックスに対応する画像を返します。
func (d Dish) Version(index int) (*Image, bool) {
	if index < 0 || index >= len(d.EditHistory) {
		return nil, false
	}
	img := d.EditHistory[index].Image
	return &img, true
}
